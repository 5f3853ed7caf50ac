// Package testvectors loads known-answer vectors stored in the
// zcash-test-vectors JSON layout under testdata/vectors.
//
// A vector file is a JSON array of rows. The first row is a comment, the
// second names the fields (either one comma-separated string or one string
// per field), and every following row is one vector.
package testvectors

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Vector is one row of a vector file, keyed by field name.
type Vector map[string]any

// Dir returns the directory holding the vector files.
func Dir() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "vectors")
}

// Load reads the named vector file.
func Load(t testing.TB, name string) []Vector {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(Dir(), name))
	require.NoError(t, err, "reading %s", name)

	var rows [][]any
	require.NoError(t, json.Unmarshal(data, &rows), "parsing %s", name)
	require.GreaterOrEqual(t, len(rows), 2, "%s: missing comment or field row", name)

	fields := fieldNames(t, rows[1])
	vectors := make([]Vector, 0, len(rows)-2)
	for i, row := range rows[2:] {
		require.Len(t, row, len(fields), "%s: vector %d", name, i)
		v := make(Vector, len(fields))
		for j, f := range fields {
			v[f] = row[j]
		}
		vectors = append(vectors, v)
	}
	return vectors
}

func fieldNames(t testing.TB, row []any) []string {
	t.Helper()

	var names []string
	for _, cell := range row {
		s, ok := cell.(string)
		require.True(t, ok, "field row holds %T", cell)
		for _, name := range strings.Split(s, ",") {
			names = append(names, strings.TrimSpace(name))
		}
	}
	return names
}

// Bytes returns a hex field decoded, or nil when the field is null.
func (v Vector) Bytes(t testing.TB, field string) []byte {
	t.Helper()

	raw, ok := v[field]
	require.True(t, ok, "no field %q", field)
	if raw == nil {
		return nil
	}
	s, ok := raw.(string)
	require.True(t, ok, "field %q holds %T", field, raw)
	b, err := hex.DecodeString(s)
	require.NoError(t, err, "field %q", field)
	return b
}

// Uint returns a numeric field, and false when the field is null.
func (v Vector) Uint(t testing.TB, field string) (uint64, bool) {
	t.Helper()

	raw, ok := v[field]
	require.True(t, ok, "no field %q", field)
	if raw == nil {
		return 0, false
	}
	n, ok := raw.(float64)
	require.True(t, ok, "field %q holds %T", field, raw)
	return uint64(n), true
}
