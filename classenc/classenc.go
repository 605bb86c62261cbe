// Package classenc implements the bijection between arbitrary external
// integer class labels and dense internal class codes in [0, K), used by
// classifiers. The table is built once from the full training label vector
// and is immutable thereafter.
package classenc

import "sort"

// Table maps external int64 labels to dense [0, K) codes and back. The
// decode table is sorted ascending by external value; encode is its
// inverse, implemented as a hash lookup.
type Table struct {
	decode []int64
	encode map[int64]uint32
}

// NewTable builds a Table from the full set of training labels. Labels may
// repeat and arrive in any order; the resulting decode table is sorted
// ascending.
func NewTable(labels []int64) *Table {
	seen := make(map[int64]struct{})
	for _, l := range labels {
		seen[l] = struct{}{}
	}

	decode := make([]int64, 0, len(seen))
	for l := range seen {
		decode = append(decode, l)
	}
	sort.Slice(decode, func(i, j int) bool { return decode[i] < decode[j] })

	encode := make(map[int64]uint32, len(decode))
	for code, label := range decode {
		encode[label] = uint32(code)
	}

	return &Table{decode: decode, encode: encode}
}

// FromDecodeTable rebuilds a Table from an already-sorted decode slice,
// e.g. one recovered from a persisted model. Panics if decode is not
// strictly ascending.
func FromDecodeTable(decode []int64) *Table {
	for i := 1; i < len(decode); i++ {
		if decode[i] <= decode[i-1] {
			panic("classenc: decode table is not strictly ascending")
		}
	}

	encode := make(map[int64]uint32, len(decode))
	for code, label := range decode {
		encode[label] = uint32(code)
	}

	return &Table{decode: decode, encode: encode}
}

// NumClasses returns K, the number of distinct labels.
func (t *Table) NumClasses() int { return len(t.decode) }

// Encode returns the dense code for an external label. Panics if label was
// never seen at fit time.
func (t *Table) Encode(label int64) uint32 {
	code, ok := t.encode[label]
	if !ok {
		panic("classenc: unknown label")
	}
	return code
}

// Decode returns the external label for a dense code.
func (t *Table) Decode(code uint32) int64 {
	return t.decode[code]
}

// DecodeTable exposes the sorted decode slice directly, so a caller can map
// a dense code back to its original label without a per-call method call.
func (t *Table) DecodeTable() []int64 {
	return t.decode
}
