package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tontine/pkg/testutil"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	testutil.Given(t, "a filtered set of 25 items and page size 10", func(t *testing.T) {
		testutil.Then(t, "pages cover the set exactly once", func(t *testing.T) {
			var seen []int
			page := Paginate(items, 1, 10)
			assert.Equal(t, 3, page.TotalPages)
			for p := 1; p <= page.TotalPages; p++ {
				seen = append(seen, Paginate(items, p, 10).Items...)
			}
			assert.Equal(t, items, seen)
		})

		testutil.Then(t, "a page past the end is empty, not an error", func(t *testing.T) {
			page := Paginate(items, 4, 10)
			assert.Empty(t, page.Items)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 25, page.TotalItems)
		})
	})

	t.Run("total pages is ceil(count/size)", func(t *testing.T) {
		assert.Equal(t, 3, Paginate(items, 1, 10).TotalPages)
		assert.Equal(t, 1, Paginate(items, 1, 25).TotalPages)
		assert.Equal(t, 13, Paginate(items, 1, 2).TotalPages)
		assert.Equal(t, 0, Paginate([]int{}, 1, 10).TotalPages)
	})

	t.Run("invalid inputs are clamped", func(t *testing.T) {
		page := Paginate(items, 0, 0)
		assert.Equal(t, 1, page.PageNumber)
		assert.Equal(t, DefaultPageSize, page.PageSize)
		assert.Len(t, page.Items, 10)
	})
}
