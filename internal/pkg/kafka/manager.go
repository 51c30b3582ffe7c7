package kafka

import (
	"Creatr/internal/api/config"
	"context"
	"errors"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
)

type consumer struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	consumers []consumer
}

// NewConsumerManager 构造函数，未配置 topic 的消费者不启动
func NewConsumerManager(cfg *config.Config, followsHandler *FollowsHandler, likesHandler *LikesHandler) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)
	m := &ConsumerManager{}

	add := func(name, topic, groupID string, handler sarama.ConsumerGroupHandler) error {
		if topic == "" {
			return nil
		}
		group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, groupID, saramaCfg)
		if err != nil {
			return err
		}
		m.consumers = append(m.consumers, consumer{name: name, topic: topic, group: group, handler: handler})
		return nil
	}

	if followsHandler != nil {
		if err := add("follows", cfg.KafkaFollowConsumer.Topic, cfg.KafkaFollowConsumer.GroupID, followsHandler); err != nil {
			return nil, err
		}
	}
	if likesHandler != nil {
		if err := add("likes", cfg.KafkaLikeConsumer.Topic, cfg.KafkaLikeConsumer.GroupID, likesHandler); err != nil {
			_ = m.close()
			return nil, err
		}
	}

	return m, nil
}

// Start 启动所有消费者，ctx 结束后关闭并返回
func (m *ConsumerManager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range m.consumers {
		wg.Add(1)
		go func(c consumer) {
			defer wg.Done()
			log.Info("kafka consumer started", "name", c.name, "topic", c.topic)
			for {
				if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					if errors.Is(err, sarama.ErrClosedConsumerGroup) {
						return
					}
					log.Error("error from consumer", "name", c.name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}(c)

		go func(c consumer) {
			for err := range c.group.Errors() {
				log.Error("consumer group error", "name", c.name, "err", err)
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("kafka manager shutting down...")

	err := m.close()
	wg.Wait()
	return err
}

func (m *ConsumerManager) close() error {
	var errs []error
	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("failed to close consumer", "name", c.name, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
