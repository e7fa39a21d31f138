package training

import "iter"

// BatchSize returns min(max(1, n), maxBatch).
func BatchSize(n, maxBatch int) int {
	return min(max(1, n), maxBatch)
}

// Batches yields consecutive windows of size indices from order. When the
// last window would run past the end it is replaced by the final size
// indices, so every batch has the same shape and the tail overlaps the
// previous batch. The sequence is lazy and can be ranged over repeatedly.
func Batches(order []int, size int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		n := len(order)
		if n == 0 || size <= 0 {
			return
		}
		size = min(size, n)
		for next := 0; next < n; {
			to := next + size
			if to >= n {
				yield(order[n-size : n])
				return
			}
			if !yield(order[next:to]) {
				return
			}
			next = to
		}
	}
}
