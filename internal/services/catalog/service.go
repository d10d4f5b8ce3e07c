package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Team-DogFoot/hm-admin-sub000/internal/domain/model"
	redrepo "github.com/Team-DogFoot/hm-admin-sub000/internal/repo/redis"
)

type CatalogAPI interface {
	ListAlbums(ctx context.Context) ([]model.Album, error)
	ListEvents(ctx context.Context, activeOnly bool) ([]model.Event, error)
	GetEvent(ctx context.Context, eventID int64) (model.Event, error)
}

type Dependencies struct {
	API    CatalogAPI
	Cache  *redrepo.QueryCache
	Logger *zap.Logger
}

type ServiceConfig struct {
	ListTTL time.Duration
}

// Service serves reference data for the admin panel. Albums and events
// change rarely, so both lists sit behind the query cache.
type Service struct {
	api    CatalogAPI
	cache  *redrepo.QueryCache
	logger *zap.Logger
	cfg    ServiceConfig
}

func NewService(deps Dependencies, cfg ServiceConfig) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Service{
		api:    deps.API,
		cache:  deps.Cache,
		logger: deps.Logger,
		cfg:    cfg,
	}
}

func (s *Service) Albums(ctx context.Context) ([]model.Album, error) {
	if s.cache != nil {
		var cached []model.Album
		if err := s.cache.Get(ctx, redrepo.KeyCatalogAlbums, &cached); err == nil {
			return cached, nil
		}
	}

	albums, err := s.api.ListAlbums(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, redrepo.KeyCatalogAlbums, albums)
	return albums, nil
}

func (s *Service) Events(ctx context.Context, activeOnly bool) ([]model.Event, error) {
	// Only the full active listing is cached; filtered calls go straight up.
	if !activeOnly {
		return s.api.ListEvents(ctx, false)
	}

	if s.cache != nil {
		var cached []model.Event
		if err := s.cache.Get(ctx, redrepo.KeyCatalogEvents, &cached); err == nil {
			return cached, nil
		}
	}

	events, err := s.api.ListEvents(ctx, true)
	if err != nil {
		return nil, err
	}
	s.store(ctx, redrepo.KeyCatalogEvents, events)
	return events, nil
}

func (s *Service) Event(ctx context.Context, eventID int64) (model.Event, error) {
	return s.api.GetEvent(ctx, eventID)
}

func (s *Service) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.ListTTL); err != nil {
		s.logger.Warn("cache catalog list", zap.Error(err), zap.String("key", key))
	}
}
