package utils

// FindIndexFunc returns the index of the first element matching pred, or -1.
func FindIndexFunc[T any](slice []T, pred func(T) bool) int {
	for i, v := range slice {
		if pred(v) {
			return i
		}
	}
	return -1
}

// RemoveAt deletes the element at i, preserving order.
func RemoveAt[T any](slice []T, i int) []T {
	return append(slice[:i], slice[i+1:]...)
}

// ArgMax returns the index of the first element with the highest score, or -1 for an empty slice.
func ArgMax[T any](slice []T, score func(T) int) int {
	best := -1
	bestScore := 0
	for i, v := range slice {
		s := score(v)
		if best == -1 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// ArgMin returns the index of the first element with the lowest score, or -1 for an empty slice.
func ArgMin[T any](slice []T, score func(T) int) int {
	return ArgMax(slice, func(v T) int { return -score(v) })
}
