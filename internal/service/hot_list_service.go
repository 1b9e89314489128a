package service

import (
	"Pressroom/internal/strategy"
	"context"
	log "log/slog"

	"golang.org/x/sync/errgroup"
)

// HotListService 预热常用条数的热门榜
type HotListService interface {
	Warm(ctx context.Context) error
}

type hotListServiceImpl struct {
	hot   *strategy.Hot
	sizes []int
}

func NewHotListService(hot *strategy.Hot, sizes []int) HotListService {
	return &hotListServiceImpl{hot: hot, sizes: sizes}
}

func (s *hotListServiceImpl) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, size := range s.sizes {
		if size <= 0 {
			continue
		}
		g.Go(func() error {
			list, err := s.hot.Refresh(ctx, size)
			if err != nil {
				return err
			}
			log.InfoContext(ctx, "hot list refreshed", "size", size, "count", len(list))
			return nil
		})
	}
	return g.Wait()
}
