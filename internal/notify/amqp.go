package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"autocare/internal/core"
	"autocare/internal/log"
)

// Message is the wire format published to the push gateway queue. The
// gateway owns delivery; this side only records the id for cancellation.
type Message struct {
	Action         string    `json:"action"` // "schedule", "cancel", "cancel_all"
	NotificationID string    `json:"notificationId,omitempty"`
	Payload        *Payload  `json:"payload,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// AMQPNotifier publishes scheduling requests to a durable direct exchange.
// A separate push gateway consumes the queue and talks to the device.
type AMQPNotifier struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	logger       *log.Logger
}

func NewAMQPNotifier(url, exchangeName, queueName string, logger *log.Logger) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentNotify})
	}

	n := &AMQPNotifier{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		logger:       logger.WithComponent(log.ComponentNotify),
	}

	if err := n.setup(); err != nil {
		n.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return n, nil
}

func (n *AMQPNotifier) setup() error {
	err := n.channel.ExchangeDeclare(
		n.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = n.channel.QueueDeclare(
		n.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = n.channel.QueueBind(n.queueName, n.queueName, n.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Schedule publishes a one-shot alert for the reminder's due date. A due
// date that is not strictly in the future yields no notification and no
// error, matching the bridge contract.
func (n *AMQPNotifier) Schedule(ctx context.Context, reminder core.Reminder) (string, error) {
	if !reminder.DueDate.After(time.Now()) {
		return "", nil
	}
	return n.publishSchedule(ctx, PayloadFor(reminder))
}

// ScheduleByKilometers publishes an alert at the estimated date the odometer
// target will be reached.
func (n *AMQPNotifier) ScheduleByKilometers(ctx context.Context, reminder core.Reminder, currentKm int) (string, error) {
	triggerAt, ok := KilometerTrigger(time.Now(), currentKm, reminder.DueKilometers)
	if !ok {
		return "", nil
	}
	return n.publishSchedule(ctx, KilometerPayloadFor(reminder, triggerAt))
}

func (n *AMQPNotifier) publishSchedule(ctx context.Context, payload Payload) (string, error) {
	notificationID := uuid.NewString()
	msg := Message{
		Action:         "schedule",
		NotificationID: notificationID,
		Payload:        &payload,
		Timestamp:      time.Now(),
	}
	if err := n.publish(ctx, msg); err != nil {
		return "", err
	}
	n.logger.InfoContext(ctx, "Notification scheduled",
		log.FieldNotificationID, notificationID,
		log.FieldDueDate, payload.TriggerAt)
	return notificationID, nil
}

// Cancel asks the gateway to drop a scheduled alert. Unknown ids are the
// gateway's problem; publishing never fails for them.
func (n *AMQPNotifier) Cancel(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return nil
	}
	msg := Message{
		Action:         "cancel",
		NotificationID: notificationID,
		Timestamp:      time.Now(),
	}
	if err := n.publish(ctx, msg); err != nil {
		return err
	}
	n.logger.InfoContext(ctx, "Notification canceled", log.FieldNotificationID, notificationID)
	return nil
}

// CancelAll clears every scheduled alert.
func (n *AMQPNotifier) CancelAll(ctx context.Context) error {
	return n.publish(ctx, Message{Action: "cancel_all", Timestamp: time.Now()})
}

func (n *AMQPNotifier) publish(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = n.channel.PublishWithContext(
		ctx,
		n.exchangeName,
		n.queueName, // routing key matches the queue on a direct exchange
		false,       // mandatory
		false,       // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
