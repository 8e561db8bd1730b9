// Package bloom provides probabilistic URL deduplication for catalog
// walks. The search listing is sorted by a live popularity metric, so
// the same release can drift between pages and reappear; a Bloom filter
// keeps already-seen URLs from creating duplicate stubs without holding
// every URL in memory.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter tracks release URLs that have already been collected.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate. A false positive means a release is skipped as a
// duplicate when it was not; with rates around 1e-4 that loss is
// negligible next to the duplicates the listing itself produces.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// AddIfNew records the URL and reports whether it was new. False means
// the URL was (probably) seen before and the caller should skip it.
func (f *Filter) AddIfNew(url string) bool {
	if f.f.TestString(url) {
		return false
	}
	f.f.AddString(url)
	return true
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
