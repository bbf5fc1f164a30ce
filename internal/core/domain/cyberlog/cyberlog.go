package cyberlog

import (
	"fmt"
	"math"
	c "securecrop/internal/core/domain/common"
	"time"
)

type ID int64

type IntegrityStatus string

const (
	StatusOK            IntegrityStatus = "OK"
	StatusAnomaly       IntegrityStatus = "ANOMALY"
	StatusOutOfRange    IntegrityStatus = "OUT_OF_RANGE"
	StatusLowConfidence IntegrityStatus = "LOW_CONFIDENCE"
	StatusTampered      IntegrityStatus = "TAMPERED"
)

func (s IntegrityStatus) Validate() error {
	switch s {
	case StatusOK, StatusAnomaly, StatusOutOfRange, StatusLowConfidence, StatusTampered:
		return nil
	}
	return fmt.Errorf("invalid integrity status: %q", string(s))
}

// Record is an append-only security event. Records are created by other
// subsystems (soil input integrity checks) and are read-only from the API.
type Record struct {
	ID              ID
	SoilInputID     c.Optional[int64]
	AnomalyDetected bool
	IntegrityStatus IntegrityStatus
	Details         string
	CreatedAt       time.Time
}

type StatusCount struct {
	IntegrityStatus IntegrityStatus
	Count           int64
}

type Stats struct {
	TotalLogs         int64
	AnomaliesDetected int64
	AnomalyRate       float64
	StatusBreakdown   []StatusCount
}

// NewStats derives the anomaly rate as a percentage rounded to two decimal
// places. The rate is 0 when there are no records at all.
func NewStats(total int64, anomalies int64, breakdown []StatusCount) Stats {
	var rate float64
	if total > 0 {
		rate = math.Round(float64(anomalies)/float64(total)*100*100) / 100
	}
	return Stats{
		TotalLogs:         total,
		AnomaliesDetected: anomalies,
		AnomalyRate:       rate,
		StatusBreakdown:   breakdown,
	}
}
