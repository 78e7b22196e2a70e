package tzdb

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grodin/jiff/tzif"
)

// writeZone encodes a minimal TZif file for a fixed-offset zone under
// dir/name.
func writeZone(t *testing.T, dir, name string) {
	t.Helper()
	d := tzif.Data{
		Version: tzif.V2,
		Block: tzif.DataBlock{
			TransitionTimes: []int64{1414908000},
			TransitionTypes: []uint8{0},
			LocalTimeTypes: []tzif.LocalTimeTypeRecord{
				{Utoff: -18000, Dst: false, Idx: 0},
			},
			Designations: []byte("EST\x00"),
		},
		TZString: "EST5",
	}
	var buf bytes.Buffer
	require.NoError(t, d.Encode(&buf))

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "Test/East")

	db := &DB{Dirs: []string{dir}}
	rs, err := db.Load("Test/East")
	require.NoError(t, err)

	name, ok := rs.Name()
	assert.True(t, ok)
	assert.Equal(t, "Test/East", name)

	got := rs.Lookup(1500000000)
	assert.Equal(t, int32(-18000), got.Offset)
	assert.Equal(t, "EST", got.Abbr)
}

func TestLoadZoneinfoEnv(t *testing.T) {
	dir := t.TempDir()
	writeZone(t, dir, "Test/East")
	t.Setenv("ZONEINFO", dir)

	db := &DB{}
	_, err := db.Load("Test/East")
	require.NoError(t, err)
}

func TestLoadSearchOrder(t *testing.T) {
	missing := t.TempDir()
	present := t.TempDir()
	writeZone(t, present, "Test/East")

	db := &DB{Dirs: []string{missing, present}}
	_, err := db.Load("Test/East")
	require.NoError(t, err)
}

func TestLoadNotFound(t *testing.T) {
	db := &DB{Dirs: []string{t.TempDir()}}
	_, err := db.Load("No/Such_Zone")
	require.ErrorIs(t, err, ErrZoneNotFound)
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad"), []byte("not tzif"), 0o644))

	db := &DB{Dirs: []string{dir}}
	_, err := db.Load("Bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrZoneNotFound)
}

func TestLoadInvalidNames(t *testing.T) {
	db := &DB{Dirs: []string{t.TempDir()}}
	for _, name := range []string{"", "/", "/etc/passwd", "../escape", "a/../../escape", ".hidden"} {
		_, err := db.Load(name)
		assert.Error(t, err, "name %q", name)
	}
}
