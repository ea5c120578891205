package pagination_test

import (
	"testing"

	"github.com/invofin/board_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, pagination.TotalPages(0, 25))
	assert.Equal(t, 1, pagination.TotalPages(1, 25))
	assert.Equal(t, 1, pagination.TotalPages(25, 25))
	assert.Equal(t, 2, pagination.TotalPages(26, 25))
	assert.Equal(t, 4, pagination.TotalPages(100, 25))
	assert.Equal(t, 0, pagination.TotalPages(10, 0))
}

func TestPageRange(t *testing.T) {
	assert.Empty(t, pagination.PageRange(1, 0))

	// Five pages or fewer: the full range regardless of the current page.
	assert.Equal(t, []int{1, 2, 3}, pagination.PageRange(2, 3))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pagination.PageRange(5, 5))

	// Early pages keep the window anchored at the start.
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pagination.PageRange(1, 9))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, pagination.PageRange(3, 9))

	// Middle pages center the window.
	assert.Equal(t, []int{3, 4, 5, 6, 7}, pagination.PageRange(5, 9))

	// Near the end the window clamps to the last five pages.
	assert.Equal(t, []int{5, 6, 7, 8, 9}, pagination.PageRange(8, 9))
	assert.Equal(t, []int{5, 6, 7, 8, 9}, pagination.PageRange(9, 9))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Offset(1, 25))
	assert.Equal(t, 25, pagination.Offset(2, 25))
	assert.Equal(t, 0, pagination.Offset(0, 25))
	assert.Equal(t, 0, pagination.Offset(-3, 25))
}
