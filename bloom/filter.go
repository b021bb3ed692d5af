// Package bloom tracks CVE identifiers already seen during a feed
// ingestion run.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter records CVE identifiers across feed files within a run. Yearly and
// modified feed files overlap, so repeated identifiers are common. The filter
// may report a fresh identifier as seen (false positive) at the configured
// rate, never the reverse.
type Filter struct {
	ids *bloom.BloomFilter
}

// NewFilter sizes a filter for n expected identifiers at the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{ids: bloom.NewWithEstimates(n, fpRate)}
}

// Seen marks id as seen and reports whether it was already present.
func (f *Filter) Seen(id string) bool {
	return f.ids.TestOrAddString(id)
}

// EstimatedCount approximates how many distinct identifiers were recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.ids.ApproximatedSize())
}
