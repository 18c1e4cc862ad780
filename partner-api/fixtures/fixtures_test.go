package fixtures

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedFixturesDecode(t *testing.T) {
	s := New("")

	for _, name := range []string{
		"abc-products.json", "abc-product-content.json", "abc-product-availability.json",
		"cde-products.json", "cde-product-availability.json",
	} {
		var list []map[string]any
		require.NoError(t, s.Decode(name, &list), name)
		assert.NotEmpty(t, list, name)
	}

	var byProduct map[string][]map[string]any
	require.NoError(t, s.Decode("cde-product-content.json", &byProduct))
	assert.NotEmpty(t, byProduct)
}

func TestDecode_Missing(t *testing.T) {
	s := NewFromFS(fstest.MapFS{})

	var v []any
	assert.ErrorIs(t, s.Decode("abc-products.json", &v), ErrMissing)
}

func TestDecode_Malformed(t *testing.T) {
	s := NewFromFS(fstest.MapFS{"abc-products.json": {Data: []byte(`[{`)}})

	var v []any
	err := s.Decode("abc-products.json", &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissing)
}

func TestNew_Directory(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	var v []any
	assert.ErrorIs(t, s.Decode("cde-products.json", &v), ErrMissing)
}
