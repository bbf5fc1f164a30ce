package consumers

import (
	"context"
	"securecrop/internal/app/deps"
	"securecrop/internal/app/services"
	dl "securecrop/internal/core/domain/logging"
	passwordresetemail "securecrop/internal/rabbitmq/consumers/password_reset_email"
	securityevent "securecrop/internal/rabbitmq/consumers/security_event"
)

func initPasswordResetEmailConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqPasswordResetEmailsQueue
	if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	consumer := passwordresetemail.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.SendPasswordResetEmail,
	)
	if err := consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func initSecurityEventConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqSecurityEventsQueue
	if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	consumer := securityevent.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.RecordSecurityEvent,
		deps.Now,
	)
	if err := consumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownPasswordResetEmailConsumer := initPasswordResetEmailConsumer(deps, services)
	shutdownSecurityEventConsumer := initSecurityEventConsumer(deps, services)

	return func() {
		shutdownPasswordResetEmailConsumer()
		shutdownSecurityEventConsumer()
	}
}
