package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapErase(t *testing.T) {
	t.Run("middle element pulls last forward", func(t *testing.T) {
		s := []string{"a", "b", "c", "d"}
		backing := s
		out, moved := SwapErase(s, 1)
		assert.Equal(t, []string{"a", "d", "c"}, out)
		assert.Equal(t, 1, moved)
		assert.Equal(t, "", backing[3], "vacated tail slot is zeroed")
	})

	t.Run("last element relocates nothing", func(t *testing.T) {
		out, moved := SwapErase([]int{1, 2, 3}, 2)
		assert.Equal(t, []int{1, 2}, out)
		assert.Equal(t, End, moved)
	})

	t.Run("single element", func(t *testing.T) {
		out, moved := SwapErase([]int{7}, 0)
		assert.Empty(t, out)
		assert.Equal(t, End, moved)
	})

	t.Run("first of two", func(t *testing.T) {
		out, moved := SwapErase([]int{1, 2}, 0)
		assert.Equal(t, []int{2}, out)
		assert.Equal(t, 0, moved)
	})
}
