package broker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ration-slot-booking/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// connection is the part of *amqp.Connection the publisher uses.
type connection interface {
	Channel() (*amqp.Channel, error)
	IsClosed() bool
	Close() error
}

type dialFunc func(url string) (connection, error)

func dialAMQP(url string) (connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// AMQPPublisher sends each topic to a durable queue of the same name on the
// default exchange. A dropped connection is re-dialled on the next publish.
type AMQPPublisher struct {
	url    string
	dial   dialFunc
	conn   connection
	logger *slog.Logger

	mu       sync.Mutex
	ch       *amqp.Channel
	declared map[string]bool
}

func NewAMQPPublisher(url string, logger *slog.Logger) (*AMQPPublisher, error) {
	return newPublisher(url, dialAMQP, logger)
}

func newPublisher(url string, dial dialFunc, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, err := dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "rabbitmq: dial failed")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "rabbitmq: channel open failed")
	}
	return &AMQPPublisher{url: url, dial: dial, conn: conn, ch: ch, logger: logger, declared: make(map[string]bool)}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnection(); err != nil {
		return err
	}
	if err := p.ensureChannel(); err != nil {
		return err
	}

	if !p.declared[topic] {
		if _, err := p.ch.QueueDeclare(topic, true, false, false, false, nil); err != nil {
			return errs.Wrap(err, "rabbitmq: queue declare failed")
		}
		p.declared[topic] = true
	}

	err := p.ch.PublishWithContext(ctx, "", topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         payload,
	})
	if err != nil {
		return errs.Wrap(err, "rabbitmq: publish failed")
	}
	return nil
}

// ensureConnection re-dials after the broker dropped the connection, for
// example across a broker restart.
func (p *AMQPPublisher) ensureConnection() error {
	if !p.conn.IsClosed() {
		return nil
	}
	conn, err := p.dial(p.url)
	if err != nil {
		return errs.Wrap(err, "rabbitmq: redial failed")
	}
	p.logger.Warn("rabbitmq connection re-established")
	p.conn = conn
	p.ch = nil
	p.declared = make(map[string]bool)
	return nil
}

// ensureChannel reopens the channel after the broker closed it, for example
// following a failed declare.
func (p *AMQPPublisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return errs.Wrap(err, "rabbitmq: channel reopen failed")
	}
	p.logger.Warn("rabbitmq channel reopened")
	p.ch = ch
	p.declared = make(map[string]bool)
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	return p.conn.Close()
}
