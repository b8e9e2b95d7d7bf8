package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaging(t *testing.T) {
	p := NewPaging("3", "20", 25, 100)
	assert.Equal(t, Paging{Page: 3, PerPage: 20, Offset: 40, Limit: 20}, p)

	p = NewPaging("", "", 25, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.PerPage)

	p = NewPaging("-2", "5000", 25, 100)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestBuildPagination(t *testing.T) {
	pg := BuildPagination(45, Paging{Page: 2, PerPage: 20})
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = BuildPagination(0, Paging{Page: 1, PerPage: 20})
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
}
