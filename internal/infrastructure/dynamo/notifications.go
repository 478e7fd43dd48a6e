package dynamo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/insurancepro-api/internal/domain"
)

// NotificationRepo provides typed DynamoDB operations for the notifications table.
type NotificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNotificationRepo(client *dynamodb.Client, tableName string) *NotificationRepo {
	return &NotificationRepo{client: client, tableName: tableName}
}

func (r *NotificationRepo) Put(ctx context.Context, n *domain.Notification) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByScope returns every notification owned by scope, newest first.
func (r *NotificationRepo) ListByScope(ctx context.Context, scope domain.Scope) ([]domain.Notification, error) {
	items, err := queryByScope(ctx, r.client, r.tableName, scope)
	if err != nil {
		return nil, err
	}
	notifications := []domain.Notification{}
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, err
	}
	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

// MarkAsRead flips one notification to read and returns the updated item.
func (r *NotificationRepo) MarkAsRead(ctx context.Context, notificationID string) (*domain.Notification, error) {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldStatus:    domain.NotificationRead,
		fieldUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	ue.Names["#pk"] = fieldNotificationID
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldNotificationID, notificationID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("notification not found: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var n domain.Notification
	if err := attributevalue.UnmarshalMap(out.Attributes, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllAsRead marks every unread notification owned by scope as read and
// returns how many were updated. It keeps going past individual failures and
// reports the first one.
func (r *NotificationRepo) MarkAllAsRead(ctx context.Context, scope domain.Scope) (int, error) {
	notifications, err := r.ListByScope(ctx, scope)
	if err != nil {
		return 0, err
	}
	var firstErr error
	updated := 0
	for _, n := range notifications {
		if n.Status == domain.NotificationRead {
			continue
		}
		if _, err := r.MarkAsRead(ctx, n.NotificationID); err != nil {
			slog.Warn("failed to mark notification as read", "notification_id", n.NotificationID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		updated++
	}
	return updated, firstErr
}
