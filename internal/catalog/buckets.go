package catalog

// PriceBucket is a fixed price range used to filter products while browsing.
// Max == 0 marks the open-ended top bucket. Bounds are inclusive.
type PriceBucket struct {
	Key   string
	Label string
	Min   int64
	Max   int64
}

// Unbounded reports whether the bucket has no upper bound.
func (b PriceBucket) Unbounded() bool {
	return b.Max == 0
}

// Contains reports whether the price falls inside the bucket.
func (b PriceBucket) Contains(price int64) bool {
	if price < b.Min {
		return false
	}
	return b.Unbounded() || price <= b.Max
}

var priceBuckets = []PriceBucket{
	{Key: "1", Label: "100.000₫ → 500.000₫", Min: 100_000, Max: 500_000},
	{Key: "2", Label: "500.000₫ → 1.000.000₫", Min: 500_001, Max: 1_000_000},
	{Key: "3", Label: "1.000.000₫ → 3.000.000₫", Min: 1_000_001, Max: 3_000_000},
	{Key: "4", Label: "Trên 3.000.000₫", Min: 3_000_001, Max: 0},
}

// Buckets returns the static bucket set in display order.
func Buckets() []PriceBucket {
	out := make([]PriceBucket, len(priceBuckets))
	copy(out, priceBuckets)
	return out
}

// BucketByKey resolves a bucket from its callback key.
func BucketByKey(key string) (PriceBucket, bool) {
	for _, b := range priceBuckets {
		if b.Key == key {
			return b, true
		}
	}
	return PriceBucket{}, false
}
