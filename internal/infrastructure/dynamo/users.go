package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/insurancepro-api/internal/domain"
)

// UserRepo stores one identity record per lowercased email (the partition key).
type UserRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUserRepo(client *dynamodb.Client, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// UpsertOTP stores a fresh challenge for email, creating the record when it
// does not exist. Concurrent calls are last-write-wins.
func (r *UserRepo) UpsertOTP(ctx context.Context, email, newUserID, code string, expiresAt, now time.Time) (*domain.User, error) {
	input, err := upsertOTPInput(r.tableName, email, newUserID, code, expiresAt, now)
	if err != nil {
		return nil, err
	}
	out, err := r.client.UpdateItem(ctx, input)
	if err != nil {
		return nil, err
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Attributes, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// upsertOTPInput writes user_id, is_verified and created_at only when absent,
// so a re-issue keeps the identity and verification state. The attempt
// counter is reset every time.
func upsertOTPInput(table, email, newUserID, code string, expiresAt, now time.Time) (*dynamodb.UpdateItemInput, error) {
	values, err := attributevalue.MarshalMap(map[string]interface{}{
		":code": code,
		":exp":  expiresAt,
		":zero": 0,
		":now":  now,
		":id":   newUserID,
		":f":    false,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal otp upsert: %w", err)
	}
	return &dynamodb.UpdateItemInput{
		TableName: aws.String(table),
		Key:       strKey(fieldEmail, email),
		UpdateExpression: aws.String("SET #code = :code, #exp = :exp, #att = :zero, #upd = :now, " +
			"#uid = if_not_exists(#uid, :id), #ver = if_not_exists(#ver, :f), #crt = if_not_exists(#crt, :now)"),
		ExpressionAttributeNames: map[string]string{
			"#code": fieldOTPCode,
			"#exp":  fieldOTPExpiresAt,
			"#att":  fieldOTPAttempts,
			"#upd":  fieldUpdatedAt,
			"#uid":  fieldUserID,
			"#ver":  fieldIsVerified,
			"#crt":  fieldCreatedAt,
		},
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey(fieldEmail, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CompleteOTP marks the user verified and clears the pending challenge, but
// only while the stored code still equals code. A code replaced or consumed
// in between yields domain.ErrInvalid.
func (r *UserRepo) CompleteOTP(ctx context.Context, email, code string, now time.Time) error {
	input, err := completeOTPInput(r.tableName, email, code, now)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, input)
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("otp no longer pending: %w", domain.ErrInvalid)
	}
	return err
}

func completeOTPInput(table, email, code string, now time.Time) (*dynamodb.UpdateItemInput, error) {
	values, err := attributevalue.MarshalMap(map[string]interface{}{
		":t":    true,
		":zero": 0,
		":now":  now,
		":code": code,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal otp completion: %w", err)
	}
	return &dynamodb.UpdateItemInput{
		TableName:           aws.String(table),
		Key:                 strKey(fieldEmail, email),
		UpdateExpression:    aws.String("SET #ver = :t, #att = :zero, #upd = :now REMOVE #code, #exp"),
		ConditionExpression: aws.String("#code = :code"),
		ExpressionAttributeNames: map[string]string{
			"#ver":  fieldIsVerified,
			"#att":  fieldOTPAttempts,
			"#upd":  fieldUpdatedAt,
			"#code": fieldOTPCode,
			"#exp":  fieldOTPExpiresAt,
		},
		ExpressionAttributeValues: values,
	}, nil
}

// IncrementAttempts records one failed verification for email.
func (r *UserRepo) IncrementAttempts(ctx context.Context, email string) error {
	_, err := r.client.UpdateItem(ctx, incrementAttemptsInput(r.tableName, email))
	return err
}

func incrementAttemptsInput(table, email string) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       strKey(fieldEmail, email),
		UpdateExpression:          aws.String("ADD #att :one"),
		ConditionExpression:       aws.String("attribute_exists(#email)"),
		ExpressionAttributeNames:  map[string]string{"#att": fieldOTPAttempts, "#email": fieldEmail},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
	}
}

// ClearOTP drops the pending challenge without touching verification state.
func (r *UserRepo) ClearOTP(ctx context.Context, email string) error {
	_, err := r.client.UpdateItem(ctx, clearOTPInput(r.tableName, email))
	return err
}

func clearOTPInput(table, email string) *dynamodb.UpdateItemInput {
	return &dynamodb.UpdateItemInput{
		TableName:                aws.String(table),
		Key:                      strKey(fieldEmail, email),
		UpdateExpression:         aws.String("REMOVE #code, #exp"),
		ExpressionAttributeNames: map[string]string{"#code": fieldOTPCode, "#exp": fieldOTPExpiresAt},
	}
}
