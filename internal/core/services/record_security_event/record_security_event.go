package recordsecurityevent

import (
	"context"
	"errors"
	"securecrop/internal/core/domain/cyberlog"
	e "securecrop/internal/core/domain/errors"
	"securecrop/internal/core/domain/logging"
	"securecrop/internal/core/services"
)

type Input struct {
	Event cyberlog.CreateInput
}

type Result struct {
	Record cyberlog.Record
}

// service persists a security event and pushes it to the live admin stream.
// Stream failures are logged and swallowed, the stored record is the source
// of truth.
type service struct {
	log                logging.Logger
	cyberLogRepository cyberlog.Repository
	eventStream        cyberlog.EventStream
}

func New(
	log logging.Logger,
	cyberLogRepository cyberlog.Repository,
	eventStream cyberlog.EventStream,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if cyberLogRepository == nil {
		panic(e.NewNilArgumentError("cyberLogRepository"))
	}
	if eventStream == nil {
		panic(e.NewNilArgumentError("eventStream"))
	}
	return &service{
		log:                log,
		cyberLogRepository: cyberLogRepository,
		eventStream:        eventStream,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err := input.Event.IntegrityStatus.Validate(); err != nil {
		return result, err
	}
	record, err := s.cyberLogRepository.Create(ctx, input.Event)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not create security log record.", logging.Entry("err", err))
		return result, err
	}

	if err := s.eventStream.PublishRecord(ctx, record); err != nil {
		s.log.Error(
			ctx,
			"Could not publish security event to the stream.",
			logging.Entry("recordID", record.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"Security event recorded.",
		logging.Entry("recordID", record.ID),
		logging.Entry("integrityStatus", record.IntegrityStatus),
		logging.Entry("anomalyDetected", record.AnomalyDetected),
	)
	return Result{Record: record}, nil
}
