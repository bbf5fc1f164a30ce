package auditlog

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
		return rec, fmt.Errorf("could not create admin log record %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	rec = Record{
		ID:        ID(len(r.Records) + 1),
		AdminID:   input.AdminID,
		Action:    input.Action,
		CreatedAt: input.CreatedAt,
	}
	r.Records = append(r.Records, rec)
	return rec, nil
}

func (r *FakeRepository) List(ctx context.Context) ([]Record, error) {
	if r.ReturnError {
		return nil, fmt.Errorf("could not list admin log records")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	records := make([]Record, len(r.Records))
	copy(records, r.Records)
	sort.Slice(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}
