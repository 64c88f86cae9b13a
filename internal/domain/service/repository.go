package service

import (
	"context"
)

// Repository defines the interface for service record persistence. The
// implementation may be remote (DynamoDB) or in-memory when the application
// runs in local-only mode; callers never distinguish the two.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, limit int) ([]*Record, error)
}
