package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hypideas/identity-api/internal/domain"
)

// InterestRepo provides typed DynamoDB operations for the interests catalog.
type InterestRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInterestRepo(client *dynamodb.Client, tableName string) *InterestRepo {
	return &InterestRepo{client: client, tableName: tableName}
}

func (r *InterestRepo) Scan(ctx context.Context) ([]domain.Interest, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var interests []domain.Interest
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &interests); err != nil {
		return nil, err
	}
	return interests, nil
}

func (r *InterestRepo) Get(ctx context.Context, interestID string) (*domain.Interest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("interest_id", interestID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("interest not found: %w", domain.ErrNotFound)
	}
	var in domain.Interest
	if err := attributevalue.UnmarshalMap(out.Item, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *InterestRepo) Put(ctx context.Context, in *domain.Interest) error {
	item, err := attributevalue.MarshalMap(in)
	if err != nil {
		return fmt.Errorf("marshal interest: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *InterestRepo) Update(ctx context.Context, interestID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("interest_id", interestID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// HardDelete removes a catalog entry. Catalog rows are reference data with no
// audit requirement, so no soft-delete here.
func (r *InterestRepo) HardDelete(ctx context.Context, interestID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("interest_id", interestID),
	})
	return err
}
