package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// AccountEvent — событие жизненного цикла учётной записи,
// публикуемое при регистрации и создании администратора.
type AccountEvent struct {
	UserUID   string    `json:"user_uid"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher публикует события учётных записей в exchange "accounts".
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создает Publisher поверх настроенного канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishAccountCreated отправляет событие о созданной учётной записи.
func (p *Publisher) PublishAccountCreated(event AccountEvent) error {
	const op = "rabbitmq.PublishAccountCreated"
	return publishMessage(p.ch, "accounts", "created", event, op)
}

func publishMessage(ch *amqp.Channel, exchange, routingkey string, message any, op string) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingkey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
