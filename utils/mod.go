package utils

import "golang.org/x/exp/rand"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// RandomMax returns the index of a largest element by less, picking
// uniformly among equal maxima. It returns -1 for an empty slice.
func RandomMax[T any](rng *rand.Rand, slice []T, less func(a, b T) bool) int {
	best, ties := -1, 0
	for i, v := range slice {
		switch {
		case best < 0 || less(slice[best], v):
			best, ties = i, 1
		case !less(v, slice[best]):
			ties++
			if rng.Intn(ties) == 0 {
				best = i
			}
		}
	}
	return best
}
