package common

// RemoveDuplicates returns a new slice containing each distinct element of l
// exactly once, in order of first appearance. The input is not modified.
func RemoveDuplicates[T comparable](l []T) []T {
	seen := make(map[T]struct{}, len(l))
	result := make([]T, 0, len(l))
	for _, item := range l {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
