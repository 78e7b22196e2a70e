// Package tzembed holds rule sets embedded at build time by tzgen.
//
// The data here is the static counterpart of loading a zone through
// tzdb: package-level literals that satisfy the same invariants and run
// the same algorithms as decoder-built rule sets, with no file system
// access and no decoding at run time. Regenerate with the configuration
// in tzgen.yaml after a tzdata update.
package tzembed

//go:generate go run github.com/grodin/jiff/cmd/tzgen -config tzgen.yaml
