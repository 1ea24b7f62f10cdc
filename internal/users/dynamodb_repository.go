package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dionysus-app/user-api/internal/common"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses.
// *dynamodb.Client satisfies it; tests substitute a fake.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type DynamoDBRepository struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBRepository(client DynamoDBAPI, table string) *DynamoDBRepository {
	return &DynamoDBRepository{client: client, table: table}
}

func emailKey(email string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		FieldEmail: &types.AttributeValueMemberS{Value: email},
	}
}

func unmarshalRecord(item map[string]types.AttributeValue) (Record, error) {
	rec := Record{}
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("error unmarshaling item: %w", err)
	}
	return rec, nil
}

func (r *DynamoDBRepository) Get(ctx context.Context, email string) (Record, error) {

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       emailKey(email),
	})
	if err != nil {
		return nil, fmt.Errorf("error getting item: %w", err)
	}

	if len(out.Item) == 0 {
		return nil, common.ErrorNotFound
	}

	return unmarshalRecord(out.Item)
}

// GetAll scans the whole table, following LastEvaluatedKey until the store
// reports no further pages.
func (r *DynamoDBRepository) GetAll(ctx context.Context) ([]Record, error) {

	records := []Record{}
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("error scanning table: %w", err)
		}

		for _, item := range out.Items {
			rec, err := unmarshalRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return records, nil
}

// Put writes the record unconditionally, overwriting any existing item with
// the same email. The stored record is returned as the operation result.
func (r *DynamoDBRepository) Put(ctx context.Context, rec Record) (Record, error) {

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, fmt.Errorf("error marshaling item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("error putting item: %w", err)
	}

	return rec, nil
}

func (r *DynamoDBRepository) Update(ctx context.Context, email string, set []Assignment, cond *Condition) (Record, error) {

	var upd expression.UpdateBuilder
	for _, a := range set {
		upd = upd.Set(expression.Name(a.Key), expression.Value(a.Value))
	}

	builder := expression.NewBuilder().WithUpdate(upd)
	if cond != nil {
		var cb expression.ConditionBuilder
		if cond.Exists {
			cb = expression.Name(cond.Field).Equal(expression.Value(cond.Expected))
		} else {
			cb = expression.AttributeNotExists(expression.Name(cond.Field))
		}
		builder = builder.WithCondition(cb)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("error building update expression: %w", err)
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.table),
		Key:                       emailKey(email),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error updating item: %w", err)
	}

	return unmarshalRecord(out.Attributes)
}

func (r *DynamoDBRepository) Delete(ctx context.Context, email string) (Record, error) {

	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.table),
		Key:          emailKey(email),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("error deleting item: %w", err)
	}

	return unmarshalRecord(out.Attributes)
}
