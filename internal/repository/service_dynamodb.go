package repository

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamotypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/oficinago/oficinago/internal/domain/service"
	"github.com/oficinago/oficinago/internal/dynamodb"
	ierr "github.com/oficinago/oficinago/internal/errors"
	"github.com/oficinago/oficinago/internal/logger"
)

// Partition key shared by all service records; the record id is the sort key.
// The "servicos" collection name from the original deployment is kept as the
// default table name.
const servicePartition = "servicos"

type dynamoServiceRepository struct {
	client    *dynamodb.Client
	tableName string
	log       *logger.Logger
}

func newDynamoServiceRepository(client *dynamodb.Client, tableName string, log *logger.Logger) service.Repository {
	if tableName == "" {
		tableName = servicePartition
	}
	return &dynamoServiceRepository{
		client:    client,
		tableName: tableName,
		log:       log,
	}
}

type serviceItem struct {
	PK string `dynamodbav:"pk"`
	*service.Record
}

func (r *dynamoServiceRepository) Create(ctx context.Context, record *service.Record) error {
	item, err := attributevalue.MarshalMap(&serviceItem{PK: servicePartition, Record: record})
	if err != nil {
		return ierr.WithError(err).
			WithMessage("failed to marshal service record").
			Mark(ierr.ErrDatabase)
	}

	_, err = r.client.DB().PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return ierr.WithError(err).
			WithHint("Erro ao salvar o registro do serviço").
			WithMessagef("table:%s, id:%s", r.tableName, record.ID).
			Mark(ierr.ErrDatabase)
	}

	r.log.Debugw("persisted service record", "id", record.ID, "table", r.tableName)
	return nil
}

func (r *dynamoServiceRepository) Get(ctx context.Context, id string) (*service.Record, error) {
	out, err := r.client.DB().GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]dynamotypes.AttributeValue{
			"pk": &dynamotypes.AttributeValueMemberS{Value: servicePartition},
			"sk": &dynamotypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("table:%s, id:%s", r.tableName, id).
			Mark(ierr.ErrDatabase)
	}
	if out.Item == nil {
		return nil, ierr.NewErrorf("service record not found: %s", id).
			WithHint("Registro de serviço não encontrado").
			Mark(ierr.ErrNotFound)
	}

	var item serviceItem
	item.Record = &service.Record{}
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to unmarshal service record").
			Mark(ierr.ErrDatabase)
	}
	return item.Record, nil
}

func (r *dynamoServiceRepository) List(ctx context.Context, limit int) ([]*service.Record, error) {
	if limit <= 0 {
		limit = 50
	}

	out, err := r.client.DB().Query(ctx, &awsdynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]dynamotypes.AttributeValue{
			":pk": &dynamotypes.AttributeValueMemberS{Value: servicePartition},
		},
		Limit:            aws.Int32(int32(limit)),
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("table:%s", r.tableName).
			Mark(ierr.ErrDatabase)
	}

	records := make([]*service.Record, 0, len(out.Items))
	for _, raw := range out.Items {
		var item serviceItem
		item.Record = &service.Record{}
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.log.Warnw("skipping unreadable service record", "error", err)
			continue
		}
		records = append(records, item.Record)
	}
	return records, nil
}
