package service

import "math/rand/v2"

// ShuffleIDs returns a uniformly shuffled copy of ids (Fisher–Yates).
func ShuffleIDs(ids []string) []string {
	shuffled := make([]string, len(ids))
	copy(shuffled, ids)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
