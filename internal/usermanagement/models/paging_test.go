package models

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name         string
		req          PageRequest
		items        int
		total        int64
		wantPages    int
		wantPrevious bool
		wantNext     bool
	}{
		{"first of two", PageRequest{PageNumber: 1, PageSize: 20}, 20, 25, 2, false, true},
		{"second of two", PageRequest{PageNumber: 2, PageSize: 20}, 5, 25, 2, true, false},
		{"exact fit", PageRequest{PageNumber: 1, PageSize: 5}, 5, 5, 1, false, false},
		{"empty", PageRequest{PageNumber: 1, PageSize: 10}, 0, 0, 0, false, false},
		{"past the end", PageRequest{PageNumber: 4, PageSize: 10}, 0, 25, 3, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(make([]int, tt.items), tt.req, tt.total)

			assert.Len(t, page.Items, tt.items)
			assert.Equal(t, tt.total, page.TotalCount)
			assert.Equal(t, tt.wantPages, page.TotalPages, "total pages")
			assert.Equal(t, tt.wantPrevious, page.HasPrevious, "has previous")
			assert.Equal(t, tt.wantNext, page.HasNext, "has next")
		})
	}
}

func TestNewPageNilItems(t *testing.T) {
	page := NewPage[string](nil, PageRequest{PageNumber: 1, PageSize: 10}, 0)
	assert.NotNil(t, page.Items, "items should serialize as an empty list")
}

func TestPageRequest_Descending(t *testing.T) {
	for _, token := range []string{"desc", "DESC", "name_desc", "-name", " descending "} {
		assert.True(t, PageRequest{SortOrder: token}.Descending(), token)
	}
	for _, token := range []string{"", "asc", "name", "name_asc", "random", "created_at desc"} {
		assert.False(t, PageRequest{SortOrder: token}.Descending(), token)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{PageNumber: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, PageRequest{PageNumber: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, PageRequest{PageNumber: 0, PageSize: 20}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{PageNumber: math.MaxInt/20 + 2, PageSize: 20}.Offset(),
		"offset must not wrap around")
	assert.Equal(t, math.MaxInt, PageRequest{PageNumber: math.MaxInt, PageSize: 100}.Offset())
}

func TestActorContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ActorFromContext(ctx))
	assert.Equal(t, "user-1", ActorFromContext(WithActor(ctx, "user-1")))
}
