package mq

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Handle func(ctx context.Context, body []byte) error

type Consumer interface {
	Consume(ctx context.Context, prefetch int, queue string, handler Handle) error
}

type RabbitConsumer struct {
	ch     *amqp.Channel
	tag    string
	logger *zap.Logger
}

func NewRabbitConsumer(ch *amqp.Channel, tag string, logger *zap.Logger) Consumer {
	return &RabbitConsumer{ch: ch, tag: tag, logger: logger}
}

// Consume blocks until ctx is done or the delivery channel closes. Handler
// successes are acked, temporary failures requeued and everything else
// rejected to the dead letter queue when one is declared.
func (c *RabbitConsumer) Consume(ctx context.Context, prefetch int, queue string, handler Handle) error {
	if prefetch <= 0 {
		prefetch = 1
	}

	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(
		queue,
		c.tag,
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	c.logger.Info("Consumer started",
		zap.String("queue", queue),
		zap.String("consumerTag", c.tag),
		zap.Int("prefetch", prefetch))

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel(c.tag, false)
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				c.logger.Warn("Delivery channel closed", zap.String("queue", queue))
				return nil
			}

			c.process(ctx, d, handler)
		}
	}
}

func (c *RabbitConsumer) process(ctx context.Context, d amqp.Delivery, handler Handle) {
	err := handler(ctx, d.Body)
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			c.logger.Error("Failed to ack delivery", zap.Uint64("deliveryTag", d.DeliveryTag), zap.Error(ackErr))
		}
		return
	}

	requeue := shouldRequeue(err)
	c.logger.Warn("Handler failed",
		zap.Uint64("deliveryTag", d.DeliveryTag),
		zap.Bool("requeue", requeue),
		zap.Bool("redelivered", d.Redelivered),
		zap.Error(err))

	if nackErr := d.Nack(false, requeue); nackErr != nil {
		c.logger.Error("Failed to nack delivery", zap.Uint64("deliveryTag", d.DeliveryTag), zap.Error(nackErr))
	}
}

func shouldRequeue(err error) bool {
	return IsTemporary(err)
}
