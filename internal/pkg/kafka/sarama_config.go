package kafka

import (
	"Pressroom/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

const clientID = "pressroom"

// newSaramaConfig 行为消费者的 sarama 配置，offset 由 processBatch 手动标记
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()
	c.ClientID = clientID

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Consumer.Return.Errors = true
	// 画像只需要感知新行为，历史 binlog 没有意义
	c.Consumer.Offsets.Initial = sarama.OffsetNewest
	c.Consumer.Offsets.AutoCommit.Enable = true
	c.Consumer.Offsets.AutoCommit.Interval = time.Second

	consumer := kafkaCfg.Consumer
	setSeconds(&c.Consumer.Group.Session.Timeout, consumer.SessionTimeout)
	setSeconds(&c.Consumer.Group.Heartbeat.Interval, consumer.HeartbeatInterval)
	setSeconds(&c.Consumer.Group.Rebalance.Timeout, consumer.RebalanceTimeout)
	setSeconds(&c.Consumer.MaxProcessingTime, consumer.MaxProcessingTime)
	c.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}

	return c
}

// setSeconds 未配置时保留 sarama 默认值
func setSeconds(dst *time.Duration, seconds int) {
	if seconds > 0 {
		*dst = time.Duration(seconds) * time.Second
	}
}
