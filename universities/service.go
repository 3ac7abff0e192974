package universities

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/listquery"
)

// Service runs directory searches.
type Service struct {
	repo Repository
}

// NewService creates a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search returns one page of universities matching q.Filter plus the total match count.
// Count and page are independent queries run concurrently, so under concurrent writes
// the total may not match the page exactly.
func (s *Service) Search(ctx context.Context, q listquery.Query) (*listquery.Page[University], error) {
	page := &listquery.Page[University]{Params: q.Params}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.Count(gctx, q.Filter)
		page.Total = total
		return err
	})
	g.Go(func() error {
		items, err := s.repo.List(gctx, q)
		page.Items = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperror.NewDatabaseError("failed to search universities", err)
	}

	if page.Items == nil {
		page.Items = []University{}
	}
	return page, nil
}
