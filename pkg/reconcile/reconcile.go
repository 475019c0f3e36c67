// Package reconcile implements the set algebra the audit is built on:
// deduplicated, byte-ordered name sets with union and difference. Names are
// compared case-sensitively; "Nmap" and "nmap" are different elements.
package reconcile

import "sort"

// Set is an immutable collection of names, deduplicated and sorted in byte
// order. The zero value is the empty set.
type Set struct {
	items []string
}

// NewSet builds a Set from the given names. Input order does not matter,
// duplicates collapse, and empty strings are dropped since a blank line is
// never a tool. The variadic slice is copied, not retained.
func NewSet(names ...string) Set {
	items := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		items = append(items, n)
	}
	sort.Strings(items)
	dedup := items[:0]
	for i, n := range items {
		if i > 0 && items[i-1] == n {
			continue
		}
		dedup = append(dedup, n)
	}
	return Set{items: dedup}
}

// Len reports the number of elements.
func (s Set) Len() int { return len(s.items) }

// IsEmpty reports whether the set has no elements.
func (s Set) IsEmpty() bool { return len(s.items) == 0 }

// Items returns the elements in byte order. The returned slice is a copy.
func (s Set) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Contains reports whether name is an element.
func (s Set) Contains(name string) bool {
	i := sort.SearchStrings(s.items, name)
	return i < len(s.items) && s.items[i] == name
}

// Union returns a new set holding every element of s and other. Both
// operands are left untouched.
func (s Set) Union(other Set) Set {
	out := make([]string, 0, len(s.items)+len(other.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(other.items) {
		switch {
		case s.items[i] < other.items[j]:
			out = append(out, s.items[i])
			i++
		case s.items[i] > other.items[j]:
			out = append(out, other.items[j])
			j++
		default:
			out = append(out, s.items[i])
			i++
			j++
		}
	}
	out = append(out, s.items[i:]...)
	out = append(out, other.items[j:]...)
	return Set{items: out}
}

// Diff returns the elements of s that are not in other. Both operands are
// left untouched. The walk is a single merge over the two sorted slices, so
// cost is linear in the combined size.
func (s Set) Diff(other Set) Set {
	out := make([]string, 0, len(s.items))
	i, j := 0, 0
	for i < len(s.items) && j < len(other.items) {
		switch {
		case s.items[i] < other.items[j]:
			out = append(out, s.items[i])
			i++
		case s.items[i] > other.items[j]:
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, s.items[i:]...)
	return Set{items: out}
}

// Union folds any number of sets into one.
func Union(sets ...Set) Set {
	var acc Set
	for _, s := range sets {
		acc = acc.Union(s)
	}
	return acc
}

// Result holds the two outputs of a reconciliation run.
type Result struct {
	// Missing is required minus installed: tools the suite references or
	// pins that are absent from the machine.
	Missing Set
	// Extra is installed minus required: tools present on the machine that
	// nothing references or pins.
	Extra Set
}

// Reconcile compares the required set against the installed set.
func Reconcile(required, installed Set) Result {
	return Result{
		Missing: required.Diff(installed),
		Extra:   installed.Diff(required),
	}
}
