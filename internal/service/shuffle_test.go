package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffleIDs_IsPermutation(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	shuffled := ShuffleIDs(ids)

	assert.Len(t, shuffled, len(ids))
	assert.ElementsMatch(t, ids, shuffled)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, ids, "input must not be modified")
}

func TestShuffleIDs_Empty(t *testing.T) {
	assert.Empty(t, ShuffleIDs(nil))
	assert.Equal(t, []string{"x"}, ShuffleIDs([]string{"x"}))
}
