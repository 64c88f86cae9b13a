package repository

import (
	"github.com/oficinago/oficinago/internal/config"
	"github.com/oficinago/oficinago/internal/domain/service"
	"github.com/oficinago/oficinago/internal/dynamodb"
	"github.com/oficinago/oficinago/internal/logger"
)

// NewServiceRepository picks the document store implementation from the
// injected client: DynamoDB when configured, otherwise the in-memory
// local-only store.
func NewServiceRepository(client *dynamodb.Client, cfg *config.Configuration, log *logger.Logger) service.Repository {
	if client == nil {
		log.Infow("dynamodb not configured, using in-memory service store (local-only mode)")
		return NewInMemoryServiceRepository()
	}
	return newDynamoServiceRepository(client, cfg.DynamoDB.ServiceTableName, log)
}
