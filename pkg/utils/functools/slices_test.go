package functools

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	nums := []int{1, 2, 3, 4}

	assert.Equal(t, []string{"1", "2", "3", "4"}, Map(nums, strconv.Itoa))
	assert.Nil(t, Map[int, string](nil, strconv.Itoa))
	assert.Empty(t, Map([]int{}, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	nums := []int{1, 2, 3, 4}

	assert.Equal(t, []int{2, 4}, Filter(nums, func(n int) bool { return n%2 == 0 }))
	assert.Nil(t, Filter[int](nil, func(int) bool { return true }))
	assert.Empty(t, Filter(nums, func(int) bool { return false }))
	assert.Equal(t, []int{1, 2, 3, 4}, nums, "input is not modified")
}
