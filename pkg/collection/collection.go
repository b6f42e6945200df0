// Package collection provides generic slice helpers used by the listing
// engine and the reorder draft.
//
// Helpers never modify their input unless the name says so (SortStable).
//
//	active := collection.Filter(items, func(p models.Product) bool { return p.IsActive })
//	page := collection.Take(collection.DropWhile(active, beforeCursor), 20)
package collection

import "slices"

// Map transforms each element of slice s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns elements of s for which fn returns true. The result is
// never nil so it encodes as an empty JSON array.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Count returns how many elements satisfy fn.
func Count[T any](s []T, fn func(T) bool) int {
	n := 0
	for _, v := range s {
		if fn(v) {
			n++
		}
	}
	return n
}

// SortStable sorts s in place with cmp and returns it.
func SortStable[T any](s []T, cmp func(a, b T) int) []T {
	slices.SortStableFunc(s, cmp)
	return s
}

// DropWhile returns the suffix of s starting at the first element for
// which fn is false.
func DropWhile[T any](s []T, fn func(T) bool) []T {
	for i, v := range s {
		if !fn(v) {
			return s[i:]
		}
	}
	return s[len(s):]
}

// Take returns the first n elements.
func Take[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n >= len(s) {
		return s
	}
	return s[:n]
}

// Last returns the final element of s, or (zero, false) when s is empty.
func Last[T any](s []T) (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[len(s)-1], true
}

// IndexBy returns the position of the first element whose key equals k, or -1.
func IndexBy[T any, K comparable](s []T, k K, key func(T) K) int {
	for i, v := range s {
		if key(v) == k {
			return i
		}
	}
	return -1
}

// FirstDuplicate reports the first value that occurs more than once.
func FirstDuplicate[T comparable](s []T) (T, bool) {
	seen := make(map[T]struct{}, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			return v, true
		}
		seen[v] = struct{}{}
	}
	var zero T
	return zero, false
}

// Move returns a copy of s with the element at from relocated to index to,
// shifting the elements in between. Out-of-range indexes return a plain copy.
func Move[T any](s []T, from, to int) []T {
	out := slices.Clone(s)
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return out
	}
	v := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, v)
}
