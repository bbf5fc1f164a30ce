package response

import (
	"securecrop/internal/core/domain/cyberlog"
	"time"
)

type CyberLogRecord struct {
	ID              int64     `json:"id"`
	SoilInputID     *int64    `json:"soil_input_id,omitempty"`
	AnomalyDetected bool      `json:"anomaly_detected"`
	IntegrityStatus string    `json:"integrity_status"`
	Details         string    `json:"details"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r *CyberLogRecord) FromDomainRecord(rec cyberlog.Record) {
	r.ID = int64(rec.ID)
	if rec.SoilInputID.IsPresent {
		soilInputID := rec.SoilInputID.Value
		r.SoilInputID = &soilInputID
	}
	r.AnomalyDetected = rec.AnomalyDetected
	r.IntegrityStatus = string(rec.IntegrityStatus)
	r.Details = rec.Details
	r.CreatedAt = rec.CreatedAt
}

type CyberLogStats struct {
	TotalLogs         int64            `json:"total_logs"`
	AnomaliesDetected int64            `json:"anomalies_detected"`
	AnomalyRate       float64          `json:"anomaly_rate"`
	StatusBreakdown   map[string]int64 `json:"status_breakdown"`
}

func (s *CyberLogStats) FromDomainStats(stats cyberlog.Stats) {
	s.TotalLogs = stats.TotalLogs
	s.AnomaliesDetected = stats.AnomaliesDetected
	s.AnomalyRate = stats.AnomalyRate
	s.StatusBreakdown = make(map[string]int64, len(stats.StatusBreakdown))
	for _, sc := range stats.StatusBreakdown {
		s.StatusBreakdown[string(sc.IntegrityStatus)] = sc.Count
	}
}
