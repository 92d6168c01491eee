package amqp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"lifeevents/internal/export"
	"lifeevents/internal/log"
)

const publishTimeout = 5 * time.Second

// publisher is the subset of *amqp091.Channel the client needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Client publishes exported documents to an exchange. It implements export.Sink.
type Client struct {
	conn         *amqp091.Connection
	channel      publisher
	exchangeName string
	routingKey   string
	logger       *log.Logger
	now          func() time.Time
}

var _ export.Sink = (*Client)(nil)

// NewClient dials url and declares a durable direct exchange. When queueName is
// set, a durable queue is declared and bound with routingKey.
func NewClient(url, exchangeName, routingKey, queueName string, logger *log.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setup(channel, exchangeName, routingKey, queueName); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	client := newClient(channel, exchangeName, routingKey, logger)
	client.conn = conn
	return client, nil
}

func newClient(ch publisher, exchangeName, routingKey string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Discard()
	}
	return &Client{
		channel:      ch,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		logger:       logger.WithComponent(log.ComponentAMQP),
		now:          time.Now,
	}
}

func setup(ch *amqp091.Channel, exchangeName, routingKey, queueName string) error {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if queueName == "" {
		return nil
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// Deliver publishes doc as one persistent message.
func (c *Client) Deliver(ctx context.Context, doc export.Document) error {
	msg := NewExportPublishing(doc, c.now())

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.routingKey,   // routing key
		false,          // mandatory
		false,          // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.logger.InfoContext(ctx, "Published life event export",
		"message_id", msg.MessageId,
		"exchange", c.exchangeName,
		"routing_key", c.routingKey,
		log.FieldFilename, doc.Filename,
		log.FieldOperation, log.OpPublish)

	return nil
}

// Ping reports whether the broker connection is still open.
func (c *Client) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.conn != nil && c.conn.IsClosed() {
		return errors.New("AMQP connection closed")
	}
	return nil
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
