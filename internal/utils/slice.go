package utils

import (
	"github.com/duke-git/lancet/v2/slice"
)

// SliceContains reports whether s contains item.
func SliceContains[T comparable](s []T, item T) bool {
	return slice.Contain(s, item)
}

// SliceUnique removes duplicate elements, keeping first occurrence order.
func SliceUnique[T comparable](s []T) []T {
	return slice.Unique(s)
}

// SliceMap maps each element of s through fn.
func SliceMap[T any, U any](s []T, fn func(index int, item T) U) []U {
	return slice.Map(s, fn)
}
