package securityeventstream

import (
	"context"
	"encoding/json"
	"securecrop/internal/core/domain/cyberlog"
	e "securecrop/internal/core/domain/errors"
	"time"

	"github.com/r3labs/sse/v2"
)

// STREAM_ID is the single stream shared by all connected admin dashboards.
const STREAM_ID = "security-events"

type SSEStream struct {
	sseServer *sse.Server
}

func NewSSEStream(sseServer *sse.Server) *SSEStream {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	sseServer.CreateStream(STREAM_ID)
	return &SSEStream{sseServer: sseServer}
}

func (s *SSEStream) PublishRecord(ctx context.Context, record cyberlog.Record) error {
	data, err := json.Marshal(newEvent(record))
	if err != nil {
		return err
	}
	s.sseServer.Publish(STREAM_ID, &sse.Event{Data: data})
	return nil
}

type event struct {
	ID              int64  `json:"id"`
	SoilInputID     *int64 `json:"soil_input_id"`
	AnomalyDetected bool   `json:"anomaly_detected"`
	IntegrityStatus string `json:"integrity_status"`
	Details         string `json:"details"`
	CreatedAt       string `json:"created_at"`
}

func newEvent(record cyberlog.Record) event {
	ev := event{
		ID:              int64(record.ID),
		AnomalyDetected: record.AnomalyDetected,
		IntegrityStatus: string(record.IntegrityStatus),
		Details:         record.Details,
		CreatedAt:       record.CreatedAt.Format(time.RFC3339),
	}
	if record.SoilInputID.IsPresent {
		soilInputID := record.SoilInputID.Value
		ev.SoilInputID = &soilInputID
	}
	return ev
}
