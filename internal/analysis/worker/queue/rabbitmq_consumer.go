package queue

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type Message struct {
	Body      []byte
	Timestamp time.Time
	Ack       func(multiple bool) error
	Nack      func(multiple bool, requeue bool) error
}

type Consumer interface {
	Consume(ctx context.Context) (<-chan Message, error)
	Close() error
}

type rabbitMQConsumer struct {
	channel     *amqp.Channel
	exchange    string
	routingKey  string
	queue       string
	consumerTag string
	logger      zerolog.Logger
}

func NewRabbitMQConsumer(channel *amqp.Channel, exchange, routingKey, queue, consumerTag string, logger zerolog.Logger) Consumer {
	return &rabbitMQConsumer{
		channel:     channel,
		exchange:    exchange,
		routingKey:  routingKey,
		queue:       queue,
		consumerTag: consumerTag,
		logger:      logger,
	}
}

func (c *rabbitMQConsumer) Consume(ctx context.Context) (<-chan Message, error) {
	if err := c.declareTopology(); err != nil {
		return nil, err
	}

	err := c.channel.Qos(
		1,     // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		return nil, err
	}

	msgs, err := c.channel.Consume(
		c.queue,       // queue
		c.consumerTag, // consumer
		false,         // auto-ack
		false,         // exclusive
		false,         // no-local
		false,         // no-wait
		nil,           // args
	)
	if err != nil {
		return nil, err
	}

	output := make(chan Message)

	go func() {
		defer close(output)

		for {
			select {
			case <-ctx.Done():
				c.logger.Info().Msg("Stopping RabbitMQ consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Warn().Msg("RabbitMQ message channel closed")
					return
				}

				out := Message{
					Body:      msg.Body,
					Timestamp: msg.Timestamp,
					Ack:       msg.Ack,
					Nack:      msg.Nack,
				}

				select {
				case output <- out:
				case <-ctx.Done():
					msg.Nack(false, true)
					return
				}
			}
		}
	}()

	c.logger.Info().
		Str("queue", c.queue).
		Str("consumer_tag", c.consumerTag).
		Msg("RabbitMQ consumer started")

	return output, nil
}

func (c *rabbitMQConsumer) declareTopology() error {
	err := c.channel.ExchangeDeclare(
		c.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return err
	}

	_, err = c.channel.QueueDeclare(
		c.queue, // name
		true,    // durable
		false,   // delete when unused
		false,   // exclusive
		false,   // no-wait
		nil,     // arguments
	)
	if err != nil {
		return err
	}

	return c.channel.QueueBind(
		c.queue,      // queue name
		c.routingKey, // routing key
		c.exchange,   // exchange
		false,        // no-wait
		nil,          // arguments
	)
}

func (c *rabbitMQConsumer) Close() error {
	if c.channel != nil {
		if err := c.channel.Cancel(c.consumerTag, false); err != nil {
			c.logger.Error().Err(err).Msg("Failed to cancel RabbitMQ consumer")
		}
	}

	c.logger.Info().Msg("RabbitMQ consumer closed")
	return nil
}
