package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	exchangeName = "notifications"
	exchangeKind = "topic"
)

// AMQPNotifier publishes decision notifications to a RabbitMQ topic
// exchange; a separate mailer consumes them.
type AMQPNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, exchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	return &AMQPNotifier{conn: conn, channel: ch}, nil
}

func (p *AMQPNotifier) Notify(ctx context.Context, n Notification) {
	body, err := json.Marshal(n)
	if err != nil {
		logrus.WithError(err).Warn("notification marshal failed")
		return
	}

	err = p.channel.PublishWithContext(ctx,
		exchangeName,
		string(n.Type),
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		logrus.WithError(err).WithField("type", n.Type).Warn("notification publish failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"type":  n.Type,
		"email": n.AccountEmail,
	}).Debug("notification published")
}

func (p *AMQPNotifier) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
