package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/dental-slots-engine/internal/config"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
	"github.com/suchimauz/dental-slots-engine/internal/core/ports/in"
	"github.com/suchimauz/dental-slots-engine/internal/core/ports/out"
)

// AppointmentListener слушает события изменения записей от бэкенда клиники
// и инвалидирует кэш снимков, чтобы движок не считал доступность по устаревшим данным
type AppointmentListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.SlotEngineUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	EventType    string
	ResourceType string
)

const (
	ResourceTypeAll         ResourceType = "_all_"
	ResourceTypeAppointment ResourceType = "appointment"
	ResourceTypeDoctor      ResourceType = "doctor"
)

const (
	EventTypeStore      EventType = "store"
	EventTypeInvalidate EventType = "invalidate"
)

type EventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType ResourceType
	EventType    EventType
}

// AppointmentEventMessage - тело события изменения записи
type AppointmentEventMessage struct {
	DoctorID    string             `json:"doctorId"`
	Date        json_types.Date    `json:"date"`
	Appointment domain.Appointment `json:"appointment"`
}

func NewAppointmentListener(useCase in.SlotEngineUseCase, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &AppointmentListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := l.processMessage(ctx, msg); err != nil {
					l.logger.Warn("rabbitmq.message.process_failed", out.LogFields{
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("rabbitmq.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// clinic.slots-engine.appointment.store
// clinic.slots-engine.appointment.invalidate
// clinic.slots-engine.doctor.invalidate
// clinic.slots-engine._all_.invalidate
func (l *AppointmentListener) parseEventRoutingKey(msg amqp.Delivery) (EventRoutingKey, error) {
	parts := strings.Split(msg.RoutingKey, ".")

	if len(parts) < 4 {
		return EventRoutingKey{}, fmt.Errorf("invalid routing key: %s", msg.RoutingKey)
	}

	return EventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: ResourceType(parts[2]),
		EventType:    EventType(parts[3]),
	}, nil
}

func (l *AppointmentListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := l.parseEventRoutingKey(msg)
	if err != nil {
		return err
	}

	switch routingKey.ResourceType {
	case ResourceTypeAll:
		return l.useCase.InvalidateAllCache(ctx)
	case ResourceTypeAppointment:
		return l.processAppointmentEvent(ctx, msg)
	case ResourceTypeDoctor:
		return l.processDoctorEvent(ctx, msg)
	default:
		return fmt.Errorf("unknown resource type: %s", routingKey.ResourceType)
	}
}

// Любое событие по записи делает снимок на этот день устаревшим,
// store и invalidate обрабатываются одинаково
func (l *AppointmentListener) processAppointmentEvent(ctx context.Context, msg amqp.Delivery) error {
	var message AppointmentEventMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return err
	}

	doctorID, err := parseDoctorID(message)
	if err != nil {
		return err
	}

	date := message.Date
	if date.IsZero() {
		date = message.Appointment.Date
	}

	l.logger.Debug("rabbitmq.appointment.event", out.LogFields{
		"doctorId":   doctorID,
		"date":       date.String(),
		"routingKey": msg.RoutingKey,
	})

	return l.useCase.InvalidateAppointmentsCache(ctx, doctorID, date)
}

func (l *AppointmentListener) processDoctorEvent(ctx context.Context, msg amqp.Delivery) error {
	var message AppointmentEventMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return err
	}

	doctorID, err := parseDoctorID(message)
	if err != nil {
		return err
	}

	return l.useCase.InvalidateDoctorCache(ctx, doctorID)
}

func parseDoctorID(message AppointmentEventMessage) (uuid.UUID, error) {
	if message.DoctorID != "" {
		return uuid.Parse(message.DoctorID)
	}
	return message.Appointment.DoctorID, nil
}
