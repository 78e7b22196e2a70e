// Package tzif implements the TZif file format according to RFC8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// It is the binary-side producer for the tzrule package: Decode reads and
// structurally validates a TZif file, and Data.RuleSet converts the
// version-resolved content into a tzrule.RuleSet, rejecting anything that
// would violate the rule model's invariants. The core never sees
// malformed data.
package tzif

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.  Signed integer values MUST be represented
// using two's complement.
var order = binary.BigEndian

// Version represents the version of a TZif file.
// The version is an octet identifying the version of the file's format.
// In V1, time values are 32bit (four-octets) and in V2 upwards time values
// are 64bit (eight-octets).
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", byte(v))
	}
}

const (
	// V1 files contain only the version 1 header and data block.
	V1 Version = 0x00
	// V2 files contain the version 1 header and data block, a version 2+
	// header and data block, and a footer whose TZ string, if nonempty,
	// strictly adheres to the POSIX TZ grammar.
	V2 Version = 0x32
	// V3 is like V2, except the footer TZ string may use the extensions
	// described in Section 3.3.1 of RFC8536 (quoted designations,
	// transition times beyond 24 hours).
	V3 Version = 0x33
	// V4 is not specified in RFC8536 but in the tzfile(5) man page; it
	// relaxes rules for leap-second records only and is otherwise V3.
	V4 Version = 0x34
)

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// Header is the header of a TZif file.
//
// A TZif header is structured as follows (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
type Header struct {
	// Version is an octet identifying the version of the file's format.
	Version Version
	// Reserved for future use.
	Reserved [15]byte
	// Isutcnt is the number of UT/local indicators in the data block --
	// MUST either be zero or equal to typecnt.
	Isutcnt uint32
	// Isstdcnt is the number of standard/wall indicators in the data
	// block -- MUST either be zero or equal to typecnt.
	Isstdcnt uint32
	// Leapcnt is the number of leap-second records in the data block.
	Leapcnt uint32
	// Timecnt is the number of transition times in the data block.
	Timecnt uint32
	// Typecnt is the number of local time type records in the data
	// block -- MUST NOT be zero.
	Typecnt uint32
	// Charcnt is the total number of octets used by the set of time zone
	// designations, including the trailing NUL of the last designation --
	// MUST NOT be zero.
	Charcnt uint32
}

func (h Header) write(w io.Writer) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}
	return binary.Write(w, order, h)
}

func readHeader(r io.Reader) (Header, error) {
	var h Header
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(magic, Magic[:]) {
		return h, fmt.Errorf("invalid magic: %v", magic)
	}
	err := binary.Read(r, order, &h)
	return h, err
}

// validateHeader checks the count constraints of RFC8536 Section 3.1.
// All violations are reported, joined into one error.
func validateHeader(h Header) error {
	var errs []error
	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		errs = append(errs, fmt.Errorf("invalid isutcnt (%d): must be 0 or equal to typecnt (%d)", h.Isutcnt, h.Typecnt))
	}
	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		errs = append(errs, fmt.Errorf("invalid isstdcnt (%d): must be 0 or equal to typecnt (%d)", h.Isstdcnt, h.Typecnt))
	}
	if h.Typecnt == 0 {
		errs = append(errs, fmt.Errorf("invalid typecnt: must not be zero"))
	}
	if h.Charcnt == 0 {
		errs = append(errs, fmt.Errorf("invalid charcnt: must not be zero"))
	}
	return errors.Join(errs...)
}

// LocalTimeTypeRecord represents a local time type record.
// Each record has the following format (the lengths of multi-octet fields
// are shown in parentheses):
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeTypeRecord struct {
	// Utoff is the number of seconds to be added to UT to determine
	// local time. MUST NOT be -2**31 so that 32-bit clients can negate
	// it without overflow.
	Utoff int32
	// Dst indicates whether local time of this type is considered
	// Daylight Saving Time.
	Dst bool
	// Idx is a zero-based index into the series of time zone designation
	// octets, selecting the NUL-terminated designation string starting at
	// that position. MUST be in the range [0, charcnt-1].
	Idx uint8
}

// LeapSecondRecord specifies a correction applied to UTC to determine
// TAI, effective on or after Occur.
type LeapSecondRecord struct {
	Occur int64
	Corr  int32
}

// DataBlock is a version-resolved TZif data block. Decode widens the
// four-octet time values of a V1 block, so the block looks the same to
// callers regardless of the file version it came from.
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x (TIME_SIZE + 4))  |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
type DataBlock struct {
	// TransitionTimes is a series of UNIX leap-time values sorted in
	// strictly ascending order, at which the rules for computing local
	// time change.
	TransitionTimes []int64
	// TransitionTypes holds, per transition, a zero-based index into
	// LocalTimeTypes. MUST be in the range [0, typecnt-1].
	TransitionTypes []uint8
	// LocalTimeTypes is the local time type table.
	LocalTimeTypes []LocalTimeTypeRecord
	// Designations is an array of NUL-terminated time zone designation
	// strings; two designations MAY overlap if one is a suffix of the
	// other.
	Designations []byte
	// LeapSecondRecords are the leap-second corrections, sorted by
	// occurrence in strictly ascending order.
	LeapSecondRecords []LeapSecondRecord
	// StandardWallIndicators records, per local time type, whether its
	// transition times were specified as standard time (true) or
	// wall-clock time (false). Empty means all wall.
	StandardWallIndicators []bool
	// UTLocalIndicators records, per local time type, whether its
	// transition times were specified as UT (true) or local time
	// (false). Empty means all local. True requires the corresponding
	// standard/wall indicator to be true as well.
	UTLocalIndicators []bool
}

// readDataBlock reads a data block described by h. timeSize is 4 for V1
// blocks and 8 for V2+ blocks.
func readDataBlock(r io.Reader, h Header, timeSize int) (DataBlock, error) {
	var b DataBlock
	if h.Timecnt > 0 {
		b.TransitionTimes = make([]int64, h.Timecnt)
		if timeSize == 4 {
			narrow := make([]int32, h.Timecnt)
			if err := binary.Read(r, order, &narrow); err != nil {
				return b, fmt.Errorf("reading transition times: %w", err)
			}
			for i, t := range narrow {
				b.TransitionTimes[i] = int64(t)
			}
		} else {
			if err := binary.Read(r, order, &b.TransitionTimes); err != nil {
				return b, fmt.Errorf("reading transition times: %w", err)
			}
		}
		b.TransitionTypes = make([]uint8, h.Timecnt)
		if err := binary.Read(r, order, &b.TransitionTypes); err != nil {
			return b, fmt.Errorf("reading transition types: %w", err)
		}
	}
	if h.Typecnt > 0 {
		b.LocalTimeTypes = make([]LocalTimeTypeRecord, h.Typecnt)
		for i := range b.LocalTimeTypes {
			if err := binary.Read(r, order, &b.LocalTimeTypes[i]); err != nil {
				return b, fmt.Errorf("reading local time type record: %w", err)
			}
		}
	}
	if h.Charcnt > 0 {
		b.Designations = make([]byte, h.Charcnt)
		if _, err := io.ReadFull(r, b.Designations); err != nil {
			return b, fmt.Errorf("reading time zone designations: %w", err)
		}
	}
	if h.Leapcnt > 0 {
		b.LeapSecondRecords = make([]LeapSecondRecord, h.Leapcnt)
		for i := range b.LeapSecondRecords {
			if timeSize == 4 {
				var narrow int32
				if err := binary.Read(r, order, &narrow); err != nil {
					return b, fmt.Errorf("reading leap second record: %w", err)
				}
				b.LeapSecondRecords[i].Occur = int64(narrow)
			} else {
				if err := binary.Read(r, order, &b.LeapSecondRecords[i].Occur); err != nil {
					return b, fmt.Errorf("reading leap second record: %w", err)
				}
			}
			if err := binary.Read(r, order, &b.LeapSecondRecords[i].Corr); err != nil {
				return b, fmt.Errorf("reading leap second record: %w", err)
			}
		}
	}
	if h.Isstdcnt > 0 {
		b.StandardWallIndicators = make([]bool, h.Isstdcnt)
		if err := binary.Read(r, order, &b.StandardWallIndicators); err != nil {
			return b, fmt.Errorf("reading standard/wall indicators: %w", err)
		}
	}
	if h.Isutcnt > 0 {
		b.UTLocalIndicators = make([]bool, h.Isutcnt)
		if err := binary.Read(r, order, &b.UTLocalIndicators); err != nil {
			return b, fmt.Errorf("reading UT/local indicators: %w", err)
		}
	}
	return b, nil
}

// validateBlock checks the internal consistency constraints of a data
// block that the counts alone do not capture. All violations are
// reported, joined into one error.
func validateBlock(b DataBlock) error {
	var errs []error
	if len(b.Designations) > 0 && b.Designations[len(b.Designations)-1] != 0 {
		errs = append(errs, fmt.Errorf("invalid time zone designations: missing null terminator"))
	}
	for i, t := range b.TransitionTimes {
		if i > 0 && t <= b.TransitionTimes[i-1] {
			errs = append(errs, fmt.Errorf("transition times not strictly ascending at index %d", i))
		}
	}
	for i, ti := range b.TransitionTypes {
		if int(ti) >= len(b.LocalTimeTypes) {
			errs = append(errs, fmt.Errorf("transition %d: type index %d out of range (%d types)", i, ti, len(b.LocalTimeTypes)))
		}
	}
	for i, lt := range b.LocalTimeTypes {
		if lt.Utoff == -1<<31 {
			errs = append(errs, fmt.Errorf("local time type %d: utoff must not be -2**31", i))
		}
		if int(lt.Idx) >= len(b.Designations) {
			errs = append(errs, fmt.Errorf("local time type %d: designation index %d out of range (%d octets)", i, lt.Idx, len(b.Designations)))
		}
	}
	for i := range b.UTLocalIndicators {
		if b.UTLocalIndicators[i] && !b.StandardWallIndicators[i] {
			errs = append(errs, fmt.Errorf("local time type %d: UT indicator set without standard indicator", i))
		}
	}
	return errors.Join(errs...)
}

var asciiNewLine = byte(0x0A)

// readFooter reads the newline-delimited footer holding the TZ string.
func readFooter(r *bytes.Reader) (string, error) {
	c, err := r.ReadByte()
	if err != nil {
		return "", fmt.Errorf("reading footer: %w", err)
	}
	if c != asciiNewLine {
		return "", fmt.Errorf("expected newline, got %v", c)
	}
	var b []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			return "", fmt.Errorf("reading TZ string: %w", err)
		}
		if c == asciiNewLine {
			return string(b), nil
		}
		b = append(b, c)
	}
}

// Data is the version-resolved content of a TZif file: the data block of
// the highest version the file carries, plus the footer TZ string for
// version 2+ files.
type Data struct {
	Version Version
	Block   DataBlock
	// TZString is the footer rule for computing local time changes after
	// the last transition. Empty if absent or in V1 files.
	TZString string
	// Checksum is the CRC-32 (IEEE) of the raw encoded file.
	Checksum uint32
}

// Decode reads a TZif file.
//
// For version 2+ files the version 1 data block is parsed only to advance
// past it, as RFC8536 prescribes; the returned Data carries the 64-bit
// block and the footer. Structural errors are reported here and never
// reach the rule model.
func Decode(r io.Reader) (Data, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Data{}, fmt.Errorf("reading input: %w", err)
	}
	br := bytes.NewReader(raw)

	v1h, err := readHeader(br)
	if err != nil {
		return Data{}, fmt.Errorf("read v1 header: %w", err)
	}
	if err := validateHeader(v1h); err != nil {
		return Data{}, fmt.Errorf("v1 header: %w", err)
	}
	d := Data{Version: v1h.Version, Checksum: crc32.ChecksumIEEE(raw)}

	v1b, err := readDataBlock(br, v1h, 4)
	if err != nil {
		return Data{}, fmt.Errorf("read v1 data block: %w", err)
	}

	if d.Version == V1 {
		d.Block = v1b
		return d, validateBlock(d.Block)
	}

	v2h, err := readHeader(br)
	if err != nil {
		return Data{}, fmt.Errorf("read v2 header: %w", err)
	}
	if v2h.Version != v1h.Version {
		return Data{}, fmt.Errorf("inconsistent version: v1 header = %v, v2 header = %v", v1h.Version, v2h.Version)
	}
	if err := validateHeader(v2h); err != nil {
		return Data{}, fmt.Errorf("v2 header: %w", err)
	}
	d.Block, err = readDataBlock(br, v2h, 8)
	if err != nil {
		return Data{}, fmt.Errorf("read v2 data block: %w", err)
	}
	d.TZString, err = readFooter(br)
	if err != nil {
		return Data{}, err
	}
	return d, validateBlock(d.Block)
}

// header derives the counts describing b.
func (b DataBlock) header(v Version) Header {
	return Header{
		Version:  v,
		Isutcnt:  uint32(len(b.UTLocalIndicators)),
		Isstdcnt: uint32(len(b.StandardWallIndicators)),
		Leapcnt:  uint32(len(b.LeapSecondRecords)),
		Timecnt:  uint32(len(b.TransitionTimes)),
		Typecnt:  uint32(len(b.LocalTimeTypes)),
		Charcnt:  uint32(len(b.Designations)),
	}
}

// Encode writes the TZif representation of d.
//
// Version 2+ files get a version 1 part derived by narrowing: only
// transitions and leap records representable in 32 bits are kept there.
// The checksum field is ignored; it describes raw input, not output.
func (d Data) Encode(w io.Writer) error {
	if d.Version == V1 {
		if err := d.Block.header(V1).write(w); err != nil {
			return fmt.Errorf("write v1 header: %w", err)
		}
		if err := d.Block.write(w, 4); err != nil {
			return fmt.Errorf("write v1 data: %w", err)
		}
		return nil
	}
	v1 := narrowBlock(d.Block)
	if err := v1.header(d.Version).write(w); err != nil {
		return fmt.Errorf("write v1 header: %w", err)
	}
	if err := v1.write(w, 4); err != nil {
		return fmt.Errorf("write v1 data: %w", err)
	}
	if err := d.Block.header(d.Version).write(w); err != nil {
		return fmt.Errorf("write v2 header: %w", err)
	}
	if err := d.Block.write(w, 8); err != nil {
		return fmt.Errorf("write v2 data: %w", err)
	}
	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	if _, err := io.WriteString(w, d.TZString); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	if _, err := w.Write([]byte{asciiNewLine}); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func (b DataBlock) write(w io.Writer, timeSize int) error {
	if timeSize == 4 {
		for _, t := range b.TransitionTimes {
			if err := binary.Write(w, order, int32(t)); err != nil {
				return err
			}
		}
	} else {
		if err := binary.Write(w, order, b.TransitionTimes); err != nil {
			return err
		}
	}
	if err := binary.Write(w, order, b.TransitionTypes); err != nil {
		return err
	}
	for _, r := range b.LocalTimeTypes {
		if err := binary.Write(w, order, r); err != nil {
			return err
		}
	}
	if _, err := w.Write(b.Designations); err != nil {
		return err
	}
	for _, l := range b.LeapSecondRecords {
		if timeSize == 4 {
			if err := binary.Write(w, order, int32(l.Occur)); err != nil {
				return err
			}
		} else {
			if err := binary.Write(w, order, l.Occur); err != nil {
				return err
			}
		}
		if err := binary.Write(w, order, l.Corr); err != nil {
			return err
		}
	}
	if err := binary.Write(w, order, b.StandardWallIndicators); err != nil {
		return err
	}
	return binary.Write(w, order, b.UTLocalIndicators)
}

// narrowBlock derives the version 1 rendition of a 64-bit block by
// dropping entries outside the 32-bit time range.
func narrowBlock(b DataBlock) DataBlock {
	v1 := DataBlock{
		LocalTimeTypes:         b.LocalTimeTypes,
		Designations:           b.Designations,
		StandardWallIndicators: b.StandardWallIndicators,
		UTLocalIndicators:      b.UTLocalIndicators,
	}
	for i, t := range b.TransitionTimes {
		if int64(int32(t)) != t {
			continue
		}
		v1.TransitionTimes = append(v1.TransitionTimes, t)
		v1.TransitionTypes = append(v1.TransitionTypes, b.TransitionTypes[i])
	}
	for _, l := range b.LeapSecondRecords {
		if int64(int32(l.Occur)) != l.Occur {
			continue
		}
		v1.LeapSecondRecords = append(v1.LeapSecondRecords, l)
	}
	return v1
}
