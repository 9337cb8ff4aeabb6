package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := ParseManifest([]byte(`
categories:
  ctd_gulf_of_guinea:
    - https://example.org/casts/st001.nc
    - https://example.org/casts/st002.nc
  ctd_comparison:
    - file://testdata/st900.nc
`))
		require.NoError(t, err)

		locations, err := m.Locations("ctd_gulf_of_guinea")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://example.org/casts/st001.nc",
			"https://example.org/casts/st002.nc",
		}, locations)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		m, err := ParseManifest([]byte("categories:\n  a:\n    - x\n"))
		require.NoError(t, err)
		_, err = m.Locations("b")
		require.Error(t, err)
	})

	t.Run("EmptyCategoryRejected", func(t *testing.T) {
		_, err := ParseManifest([]byte("categories:\n  a: []\n"))
		require.Error(t, err)
	})

	t.Run("NoCategoriesRejected", func(t *testing.T) {
		_, err := ParseManifest([]byte("categories: {}\n"))
		require.Error(t, err)
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		_, err := ParseManifest([]byte("categories: [not, a, mapping]"))
		require.Error(t, err)
	})
}
