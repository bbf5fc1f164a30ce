package schema

import (
	"encoding/json"
	"time"
)

// PasswordResetEmail is queued by the API after a reset token is committed
// and picked up by the worker that talks to SES.
type PasswordResetEmail struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (m *PasswordResetEmail) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *PasswordResetEmail) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}

// SecurityEvent is emitted by soil data integrity checkers and ingested into
// the cyber log. The producers live in other services, so the field names are
// part of the wire contract.
type SecurityEvent struct {
	SoilInputID     *int64    `json:"soil_input_id,omitempty"`
	AnomalyDetected bool      `json:"anomaly_detected"`
	IntegrityStatus string    `json:"integrity_status"`
	Details         string    `json:"details"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func (m *SecurityEvent) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *SecurityEvent) Unmarshal(data []byte) error {
	return json.Unmarshal(data, m)
}
