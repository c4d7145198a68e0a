package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketsPartitionPriceSpace(t *testing.T) {
	buckets := Buckets()
	require.Len(t, buckets, 4)

	// 500000 sits in bucket 1 only; 500001 in bucket 2 only.
	boundaries := []struct {
		price int64
		key   string
	}{
		{100_000, "1"},
		{500_000, "1"},
		{500_001, "2"},
		{1_000_000, "2"},
		{1_000_001, "3"},
		{3_000_000, "3"},
		{3_000_001, "4"},
		{250_000_000, "4"},
	}
	for _, tc := range boundaries {
		matched := 0
		var matchedKey string
		for _, b := range buckets {
			if b.Contains(tc.price) {
				matched++
				matchedKey = b.Key
			}
		}
		assert.Equal(t, 1, matched, "price %d must match exactly one bucket", tc.price)
		assert.Equal(t, tc.key, matchedKey, "price %d", tc.price)
	}
}

func TestBucketBelowFloorMatchesNothing(t *testing.T) {
	for _, b := range Buckets() {
		assert.False(t, b.Contains(99_999))
	}
}

func TestBucketByKey(t *testing.T) {
	b, ok := BucketByKey("2")
	require.True(t, ok)
	assert.EqualValues(t, 500_001, b.Min)
	assert.EqualValues(t, 1_000_000, b.Max)

	_, ok = BucketByKey("9")
	assert.False(t, ok)
}

func TestTopBucketIsUnbounded(t *testing.T) {
	b, ok := BucketByKey("4")
	require.True(t, ok)
	assert.True(t, b.Unbounded())
	assert.True(t, b.Contains(1_000_000_000))
}
