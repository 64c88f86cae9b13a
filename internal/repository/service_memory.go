package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/oficinago/oficinago/internal/domain/service"
	ierr "github.com/oficinago/oficinago/internal/errors"
)

// InMemoryServiceRepository is the local-only document store. Records do not
// survive a restart, mirroring the transient behavior when no remote
// datastore is configured.
type InMemoryServiceRepository struct {
	mu      sync.RWMutex
	records map[string]*service.Record
}

func NewInMemoryServiceRepository() *InMemoryServiceRepository {
	return &InMemoryServiceRepository{
		records: make(map[string]*service.Record),
	}
}

func (r *InMemoryServiceRepository) Create(_ context.Context, record *service.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; ok {
		return ierr.NewErrorf("service record already exists: %s", record.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	r.records[record.ID] = record
	return nil
}

func (r *InMemoryServiceRepository) Get(_ context.Context, id string) (*service.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, ierr.NewErrorf("service record not found: %s", id).
			WithHint("Registro de serviço não encontrado").
			Mark(ierr.ErrNotFound)
	}
	return record, nil
}

func (r *InMemoryServiceRepository) List(_ context.Context, limit int) ([]*service.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*service.Record, 0, len(r.records))
	for _, rec := range r.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.After(records[j].RecordedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
