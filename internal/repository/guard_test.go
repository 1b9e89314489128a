package repository

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

type stubArticleRepo struct {
	calls int
	err   error
	delay time.Duration
}

func (s *stubArticleRepo) GetArticle(ctx context.Context, id uint64) (*model.Article, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	if id == 0 {
		return nil, nil
	}
	return &model.Article{ID: id}, nil
}

func (s *stubArticleRepo) ListArticles(ctx context.Context, _ ArticleFilter, _ ArticleOrder, _ int) ([]*model.Article, error) {
	s.calls++
	return nil, s.err
}

func (s *stubArticleRepo) GetArticlesByIds(ctx context.Context, _ []uint64) ([]*model.Article, error) {
	s.calls++
	return nil, s.err
}

func testBreakerConfig() config.BreakerConfig {
	return config.BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 3}
}

func TestGuardedArticleRepoOpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubArticleRepo{err: errors.New("connection refused")}
	repo := NewGuardedArticleRepo(stub, NewGuard("catalog-open-test", time.Second, testBreakerConfig()))

	for i := 0; i < 3; i++ {
		if _, err := repo.GetArticle(context.Background(), 1); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	_, err := repo.GetArticle(context.Background(), 1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("err = %v, want ErrOpenState", err)
	}
	if stub.calls != 3 {
		t.Fatalf("underlying calls = %d, want 3", stub.calls)
	}
}

func TestGuardedArticleRepoPassesThrough(t *testing.T) {
	stub := &stubArticleRepo{}
	repo := NewGuardedArticleRepo(stub, NewGuard("catalog-pass-test", time.Second, testBreakerConfig()))

	article, err := repo.GetArticle(context.Background(), 7)
	if err != nil || article == nil || article.ID != 7 {
		t.Fatalf("GetArticle = %v, %v", article, err)
	}

	article, err = repo.GetArticle(context.Background(), 0)
	if err != nil || article != nil {
		t.Fatalf("missing article = %v, %v; want nil, nil", article, err)
	}
}

func TestGuardAppliesTimeout(t *testing.T) {
	stub := &stubArticleRepo{delay: time.Second}
	repo := NewGuardedArticleRepo(stub, NewGuard("catalog-timeout-test", 20*time.Millisecond, testBreakerConfig()))

	_, err := repo.GetArticle(context.Background(), 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestGuardIgnoresCallerCancellation(t *testing.T) {
	stub := &stubArticleRepo{delay: time.Second}
	guard := NewGuard("catalog-cancel-test", time.Second, testBreakerConfig())
	repo := NewGuardedArticleRepo(stub, guard)

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _ = repo.GetArticle(ctx, 1)
	}

	if guard.State() != gobreaker.StateClosed {
		t.Fatalf("state = %v, want closed", guard.State())
	}
}
