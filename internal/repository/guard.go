package repository

import (
	"Pressroom/internal/api/config"
	"Pressroom/internal/pkg/metrics"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Guard 为存储调用加超时与熔断
type Guard struct {
	name    string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[any]
}

// NewGuard 连续失败 FailureThreshold 次后熔断，Timeout 后进入半开
func NewGuard(name string, timeout time.Duration, cfg config.BreakerConfig) *Guard {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// 调用方主动取消不算依赖故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &Guard{name: name, timeout: timeout, cb: cb}
}

// State 当前熔断状态
func (g *Guard) State() gobreaker.State {
	return g.cb.State()
}

func guardCall[T any](ctx context.Context, g *Guard, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	result, err := g.cb.Execute(func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(g.name, "failure").Inc()
		}
		return zero, fmt.Errorf("%s: %w", g.name, err)
	}
	metrics.CircuitBreakerRequests.WithLabelValues(g.name, "success").Inc()

	typed, ok := result.(T)
	if !ok && result != nil {
		return zero, fmt.Errorf("%s: unexpected result type %T", g.name, result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
