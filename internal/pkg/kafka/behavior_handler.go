package kafka

import (
	"Pressroom/internal/pkg/metrics"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

// behaviorTables 会影响用户画像的表
var behaviorTables = []string{"article_views", "article_actions"}

// ProfileInvalidator 画像缓存失效
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, userID uint64) error
}

// BehaviorHandler 消费行为表 binlog，新增行为时让对应用户的画像缓存失效
// 覆盖不经过本服务写入的行为 (后台导入、其它服务直写)
type BehaviorHandler struct {
	profiles ProfileInvalidator
}

func NewBehaviorHandler(profiles ProfileInvalidator) *BehaviorHandler {
	return &BehaviorHandler{profiles: profiles}
}

func (s *BehaviorHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("behavior consumer setup")
	return nil
}

func (s *BehaviorHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("behavior consumer cleanup")
	return nil
}

func (s *BehaviorHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-behavior consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-behavior process batch error", "err", err)
		return err
	}
	return nil
}

func (s *BehaviorHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, behaviorTables...)
	if err != nil {
		if errors.Is(err, ErrTableMismatch) {
			return nil
		}
		return err
	}

	// 行为表只追加，UPDATE/DELETE 不影响画像
	if canalMsg.Type != INSERT {
		return nil
	}
	return s.handleInsert(ctx, canalMsg)
}

// handleInsert 同一批里的用户只失效一次
func (s *BehaviorHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	seen := make(map[uint64]struct{}, len(msg.Data))
	for _, row := range msg.Data {
		userID := StrToUint64(row["user_id"])
		if userID == 0 {
			continue
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}

		if err := s.profiles.Invalidate(ctx, userID); err != nil {
			return errors.Wrapf(err, "invalidate profile of user %d", userID)
		}
	}
	metrics.BehaviorEvents.WithLabelValues(msg.Table).Add(float64(len(msg.Data)))
	log.DebugContext(ctx, "behavior rows consumed", "table", msg.Table, "rows", len(msg.Data))
	return nil
}
