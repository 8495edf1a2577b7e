package repository

import (
	"context"
	"sync"

	"github.com/dinerozz/tabsnoop-backend/internal/entity"
)

type memoryDomainRecordRepository struct {
	mu      sync.RWMutex
	records map[string]entity.DomainRecord
}

func NewMemoryDomainRecordRepository() DomainRecordRepository {
	return &memoryDomainRecordRepository{records: make(map[string]entity.DomainRecord)}
}

func (r *memoryDomainRecordRepository) GetOrDefault(ctx context.Context, domain string) (*entity.DomainRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[domain]
	if !ok {
		return entity.NewDomainRecord(), nil
	}
	return copyRecord(record), nil
}

func (r *memoryDomainRecordRepository) GetAll(ctx context.Context) (map[string]entity.DomainRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]entity.DomainRecord, len(r.records))
	for domain, record := range r.records {
		out[domain] = *copyRecord(record)
	}
	return out, nil
}

func (r *memoryDomainRecordRepository) AppendVisit(ctx context.Context, domain string, visit entity.VisitInterval) (*entity.DomainRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[domain]
	if !ok {
		record = *entity.NewDomainRecord()
	}
	record.AddVisit(visit)
	r.records[domain] = record

	return copyRecord(record), nil
}

func (r *memoryDomainRecordRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.records = make(map[string]entity.DomainRecord)
	r.mu.Unlock()
	return nil
}

func copyRecord(record entity.DomainRecord) *entity.DomainRecord {
	visits := make([]entity.VisitInterval, len(record.Visits))
	copy(visits, record.Visits)
	return &entity.DomainRecord{TotalTime: record.TotalTime, Visits: visits}
}
