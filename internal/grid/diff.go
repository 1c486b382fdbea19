package grid

import "cmp"

// Diff merges two ascending lists and reports elements only in next (entered)
// and only in prev (left). Both callbacks may be nil.
func Diff[T cmp.Ordered](prev, next []T, entered, left func(T)) {
	i, j := 0, 0
	for i < len(prev) || j < len(next) {
		switch {
		case j >= len(next) || (i < len(prev) && prev[i] < next[j]):
			if left != nil {
				left(prev[i])
			}
			i++
		case i >= len(prev) || next[j] < prev[i]:
			if entered != nil {
				entered(next[j])
			}
			j++
		default:
			i++
			j++
		}
	}
}

// Union merges two ascending lists into dst without duplicates.
func Union[T cmp.Ordered](dst, a, b []T) []T {
	dst = dst[:0]
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && a[i] < b[j]):
			dst = append(dst, a[i])
			i++
		case i >= len(a) || b[j] < a[i]:
			dst = append(dst, b[j])
			j++
		default:
			dst = append(dst, a[i])
			i++
			j++
		}
	}
	return dst
}
