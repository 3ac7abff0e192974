package favorites

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/events"
	"github.com/user/unidirectory-go/listquery"
	"github.com/user/unidirectory-go/logging"
)

const (
	EventCreated = "favorite.created"
	EventDeleted = "favorite.deleted"
)

// Publisher receives favorite change events.
type Publisher interface {
	Publish(e events.Event) int
}

type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) int { return 0 }

// Service implements the favorites use cases.
type Service struct {
	repo      Repository
	publisher Publisher
}

// NewService creates a Service. A nil publisher discards change events.
func NewService(repo Repository, publisher Publisher) *Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Service{repo: repo, publisher: publisher}
}

// wrap keeps typed errors (not found, ...) and turns anything else into a DatabaseError.
func wrap(msg string, err error) error {
	if _, ok := apperror.FromError(err); ok {
		return err
	}
	return apperror.NewDatabaseError(msg, err)
}

// List returns one page of favorites and the total count, queried concurrently.
func (s *Service) List(ctx context.Context, p listquery.Params) (*listquery.Page[Favorite], error) {
	page := &listquery.Page[Favorite]{Params: p}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.repo.Count(gctx)
		page.Total = total
		return err
	})
	g.Go(func() error {
		items, err := s.repo.List(gctx, p)
		page.Items = items
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, wrap("failed to list favorites", err)
	}
	if page.Items == nil {
		page.Items = []Favorite{}
	}
	return page, nil
}

// Create bookmarks a university.
func (s *Service) Create(ctx context.Context, universityID int) (*Favorite, error) {
	f, err := s.repo.Create(ctx, universityID)
	if err != nil {
		return nil, wrap("failed to create favorite", err)
	}
	logging.FromContext(ctx).Info("favorite created", logging.Fields{"favorite_id": f.ID, "university_id": universityID})
	s.publisher.Publish(events.Event{Type: EventCreated, Data: f})
	return f, nil
}

// Delete removes a favorite by id.
func (s *Service) Delete(ctx context.Context, id int) (*Favorite, error) {
	f, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, wrap("failed to delete favorite", err)
	}
	logging.FromContext(ctx).Info("favorite deleted", logging.Fields{"favorite_id": id})
	s.publisher.Publish(events.Event{Type: EventDeleted, Data: f})
	return f, nil
}
