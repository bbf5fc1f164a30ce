package cyberlog

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type FakeRepository struct {
	Records     []Record
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{Records: make([]Record, 0, 10)}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (rec Record, err error) {
	if r.ReturnError {
		return rec, fmt.Errorf("could not create cyber log record %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rec = Record{
		ID:              ID(len(r.Records) + 1),
		SoilInputID:     input.SoilInputID,
		AnomalyDetected: input.AnomalyDetected,
		IntegrityStatus: input.IntegrityStatus,
		Details:         input.Details,
		CreatedAt:       input.CreatedAt,
	}
	r.Records = append(r.Records, rec)
	return rec, nil
}

func (r *FakeRepository) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list cyber log records")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	records := make([]Record, 0, len(r.Records))
	for _, rec := range r.Records {
		if filter.AnomalyDetected.IsPresent && rec.AnomalyDetected != filter.AnomalyDetected.Value {
			continue
		}
		if filter.IntegrityStatus.IsPresent && rec.IntegrityStatus != filter.IntegrityStatus.Value {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

func (r *FakeRepository) GetStats(ctx context.Context) (Stats, error) {
	if r.ReturnError {
		return Stats{}, fmt.Errorf("could not get cyber log stats")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var anomalies int64
	countByStatus := make(map[IntegrityStatus]int64)
	for _, rec := range r.Records {
		if rec.AnomalyDetected {
			anomalies++
		}
		countByStatus[rec.IntegrityStatus]++
	}
	breakdown := make([]StatusCount, 0, len(countByStatus))
	for status, count := range countByStatus {
		breakdown = append(breakdown, StatusCount{IntegrityStatus: status, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].IntegrityStatus < breakdown[j].IntegrityStatus
	})
	return NewStats(int64(len(r.Records)), anomalies, breakdown), nil
}

type FakeEventStream struct {
	Published   []Record
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeEventStream() *FakeEventStream {
	return &FakeEventStream{}
}

func (s *FakeEventStream) PublishRecord(ctx context.Context, record Record) error {
	if s.ReturnError {
		return fmt.Errorf("could not publish record %v", record)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Published = append(s.Published, record)
	return nil
}
