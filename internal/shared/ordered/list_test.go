package ordered

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepend(t *testing.T) {
	t.Parallel()

	in := []string{"b", "c"}
	out := Prepend(in, "a")

	assert.Equal(t, []string{"a", "b", "c"}, out)
	assert.Equal(t, []string{"b", "c"}, in, "input must not be modified")
	assert.Equal(t, []string{"a"}, Prepend[string](nil, "a"))
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	list := []int{5, 7, 9, 7}

	assert.Equal(t, 1, IndexOf(list, func(v int) bool { return v == 7 }))
	assert.Equal(t, -1, IndexOf(list, func(v int) bool { return v == 42 }))
	assert.Equal(t, -1, IndexOf[int](nil, func(v int) bool { return true }))
}

func TestContains(t *testing.T) {
	t.Parallel()

	list := []string{"x", "y"}
	assert.True(t, Contains(list, func(s string) bool { return s == "y" }))
	assert.False(t, Contains(list, func(s string) bool { return s == "z" }))
}

func TestRemoveAt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		list    []string
		idx     int
		want    []string
		removed bool
	}{
		{"remove head", []string{"a", "b", "c"}, 0, []string{"b", "c"}, true},
		{"remove middle", []string{"a", "b", "c"}, 1, []string{"a", "c"}, true},
		{"remove tail", []string{"a", "b", "c"}, 2, []string{"a", "b"}, true},
		{"negative index is a no-op", []string{"a", "b", "c"}, -1, []string{"a", "b", "c"}, false},
		{"index past end is a no-op", []string{"a"}, 3, []string{"a"}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			original := append([]string(nil), tt.list...)
			got, removed := RemoveAt(tt.list, tt.idx)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, original, tt.list, "input must not be modified")
		})
	}
}

func TestRemoveFirst(t *testing.T) {
	t.Parallel()

	got, removed := RemoveFirst([]int{1, 2, 3, 2}, func(v int) bool { return v == 2 })
	assert.True(t, removed)
	assert.Equal(t, []int{1, 3, 2}, got)

	got, removed = RemoveFirst([]int{1, 3}, func(v int) bool { return v == 2 })
	assert.False(t, removed)
	assert.Equal(t, []int{1, 3}, got)
}
