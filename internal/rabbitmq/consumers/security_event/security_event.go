package securityevent

import (
	"context"
	"securecrop/internal/core/domain/common"
	"securecrop/internal/core/domain/cyberlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/services"
	recordsecurityevent "securecrop/internal/core/services/record_security_event"
	"securecrop/internal/rabbitmq"
	"securecrop/internal/rabbitmq/schema"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[recordsecurityevent.Input, recordsecurityevent.Result]
	now     func() time.Time
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[recordsecurityevent.Input, recordsecurityevent.Result],
	now func() time.Time,
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service, now: now}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start consuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			event := &schema.SecurityEvent{}
			if err := event.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal security event.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			createdAt := event.OccurredAt
			if createdAt.IsZero() {
				createdAt = c.now()
			}
			var soilInputID common.Optional[int64]
			if event.SoilInputID != nil {
				soilInputID = common.NewOptional(*event.SoilInputID, true)
			}
			_, err := c.service.Run(
				context.Background(),
				recordsecurityevent.Input{
					Event: cyberlog.CreateInput{
						SoilInputID:     soilInputID,
						AnomalyDetected: event.AnomalyDetected,
						IntegrityStatus: cyberlog.IntegrityStatus(event.IntegrityStatus),
						Details:         event.Details,
						CreatedAt:       createdAt,
					},
				},
			)
			if err != nil {
				c.log.Error(
					context.Background(),
					"Could not record security event, service returned an error.",
					logging.Entry("event", event),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
