package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/insurancepro-api/internal/domain"
)

// PolicyRepo provides typed DynamoDB operations for the policies table.
type PolicyRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPolicyRepo(client *dynamodb.Client, tableName string) *PolicyRepo {
	return &PolicyRepo{client: client, tableName: tableName}
}

func (r *PolicyRepo) Put(ctx context.Context, p *domain.Policy) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// SetDocumentKey records where the archived copy of an existing policy lives.
func (r *PolicyRepo) SetDocumentKey(ctx context.Context, policyID, key string) error {
	input, err := setDocumentKeyInput(r.tableName, policyID, key)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, input)
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("policy not found: %w", domain.ErrNotFound)
	}
	return err
}

func setDocumentKeyInput(table, policyID, key string) (*dynamodb.UpdateItemInput, error) {
	ue, err := buildUpdateExpr(map[string]interface{}{fieldDocumentKey: key})
	if err != nil {
		return nil, err
	}
	ue.Names["#pk"] = fieldPolicyID
	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       strKey(fieldPolicyID, policyID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	}, nil
}

func (r *PolicyRepo) Get(ctx context.Context, policyID string) (*domain.Policy, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldPolicyID, policyID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("policy not found: %w", domain.ErrNotFound)
	}
	var p domain.Policy
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByScope returns every policy owned by scope, newest first.
func (r *PolicyRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Policy, error) {
	items, err := queryByScope(ctx, r.client, r.tableName, scope)
	if err != nil {
		return nil, err
	}
	policies := []domain.Policy{}
	if err := attributevalue.UnmarshalListOfMaps(items, &policies); err != nil {
		return nil, err
	}
	sort.SliceStable(policies, func(i, j int) bool {
		return policies[i].CreatedAt.After(policies[j].CreatedAt)
	})
	return policies, nil
}
