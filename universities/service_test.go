package universities

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/listquery"
)

func TestSearchPageNeverExceedsPageSize(t *testing.T) {
	repo := &fakeRepo{items: seed(37)}
	s := NewService(repo)

	for page := 1; page <= 6; page++ {
		for _, size := range []int{1, 5, 10, 50} {
			q := listquery.Query{Params: listquery.Params{Page: page, PageSize: size}}
			got, err := s.Search(context.Background(), q)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(got.Items), size)
			assert.Equal(t, int64(37), got.Total)
			if len(got.Items) > 0 {
				assert.Equal(t, (page-1)*size+1, got.Items[0].ID)
			}
		}
	}
}

func TestSearchEmptyResultIsEmptySlice(t *testing.T) {
	s := NewService(&fakeRepo{})
	got, err := s.Search(context.Background(), listquery.Query{Params: listquery.Params{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestSearchWrapsStoreFailure(t *testing.T) {
	boom := errors.New("Test error")
	s := NewService(&fakeRepo{err: boom})

	_, err := s.Search(context.Background(), listquery.Query{Params: listquery.Params{Page: 1, PageSize: 10}})
	appErr, ok := apperror.FromError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.DatabaseError, appErr.Type)
	assert.Equal(t, "Test error", appErr.Cause())
}
