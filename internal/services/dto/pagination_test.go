package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	// 15 rows, 10 per page, asking for page 2: 5 items remain.
	p := NewPagination(2, 10, 15)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, int64(15), p.Total)
	assert.Equal(t, 2, p.Pages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestNewPagination_FirstPage(t *testing.T) {
	p := NewPagination(1, 10, 15)
	assert.True(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPagination_Empty(t *testing.T) {
	p := NewPagination(1, 10, 0)
	assert.Equal(t, 0, p.Pages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestNewPagination_ExactMultiple(t *testing.T) {
	p := NewPagination(3, 5, 15)
	assert.Equal(t, 3, p.Pages)
	assert.False(t, p.HasNext)
	assert.True(t, p.HasPrev)
}
