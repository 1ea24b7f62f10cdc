package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicates_KeepsFirstOccurrenceOrder(t *testing.T) {
	in := []string{"b", "a", "b", "c", "a", "c", "c"}
	assert.Equal(t, []string{"b", "a", "c"}, RemoveDuplicates(in))
}

func TestRemoveDuplicates_Idempotent(t *testing.T) {
	in := []string{"Cycle Tracker", "Mood", "Cycle Tracker", "Sleep"}
	once := RemoveDuplicates(in)
	twice := RemoveDuplicates(once)
	assert.Equal(t, once, twice)
}

func TestRemoveDuplicates_NoDuplicatesUnchanged(t *testing.T) {
	in := []string{"a", "b", "c"}
	assert.Equal(t, in, RemoveDuplicates(in))
}

func TestRemoveDuplicates_Empty(t *testing.T) {
	assert.Equal(t, []string{}, RemoveDuplicates([]string{}))
	assert.Equal(t, []string{}, RemoveDuplicates[string](nil))
}

func TestRemoveDuplicates_DoesNotModifyInput(t *testing.T) {
	in := []string{"x", "x", "y"}
	_ = RemoveDuplicates(in)
	assert.Equal(t, []string{"x", "x", "y"}, in)
}
