package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextCodeAfterEmptyCatalog(t *testing.T) {
	next, err := NextCodeAfter("")
	require.NoError(t, err)
	assert.Equal(t, "P001", next)
}

func TestNextCodeAfterIncrements(t *testing.T) {
	next, err := NextCodeAfter("P007")
	require.NoError(t, err)
	assert.Equal(t, "P008", next)
}

func TestNextCodeAfterLowercase(t *testing.T) {
	next, err := NextCodeAfter("p042")
	require.NoError(t, err)
	assert.Equal(t, "P043", next)
}

func TestNextCodeAfterCarriesPastPadding(t *testing.T) {
	next, err := NextCodeAfter("P999")
	require.NoError(t, err)
	assert.Equal(t, "P1000", next)
}

func TestNextCodeAfterMalformedFailsHard(t *testing.T) {
	for _, bad := range []string{"X001", "P", "Pabc", "P-1", "007"} {
		_, err := NextCodeAfter(bad)
		assert.Error(t, err, "code %q should not allocate", bad)
	}
}

func TestParseCode(t *testing.T) {
	n, err := ParseCode("P003")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = ParseCode(" p017 ")
	require.NoError(t, err)
	assert.Equal(t, 17, n)
}

func TestFormatCodeZeroPads(t *testing.T) {
	assert.Equal(t, "P001", FormatCode(1))
	assert.Equal(t, "P042", FormatCode(42))
	assert.Equal(t, "P1000", FormatCode(1000))
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "P003", NormalizeCode(" p003 "))
}
