package collectionutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssociate(t *testing.T) {
	type item struct {
		id   int64
		name string
	}
	items := []item{{1, "a"}, {2, "b"}}

	byID := Associate(items, func(i item) (int64, string) {
		return i.id, i.name
	})

	assert.Equal(t, map[int64]string{1: "a", 2: "b"}, byID)
}

func TestGroupBy(t *testing.T) {
	grouped := GroupBy([]int{1, 2, 3, 4, 5}, func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	})

	assert.Equal(t, []int{2, 4}, grouped["even"])
	assert.Equal(t, []int{1, 3, 5}, grouped["odd"])
}

func TestGetOrDefault(t *testing.T) {
	m := map[string]int{"a": 1}

	assert.Equal(t, 1, GetOrDefault(m, "a", 0))
	assert.Equal(t, 42, GetOrDefault(m, "missing", 42))
}
