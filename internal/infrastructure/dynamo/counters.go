package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// CounterRepo hands out monotonically increasing sequence numbers.
type CounterRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewCounterRepo(client *dynamodb.Client, tableName string) *CounterRepo {
	return &CounterRepo{client: client, tableName: tableName}
}

// Next atomically increments the named counter and returns its new value.
func (r *CounterRepo) Next(ctx context.Context, name string) (int64, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldCounterName, name),
		UpdateExpression:          aws.String("ADD #v :one"),
		ExpressionAttributeNames:  map[string]string{"#v": fieldCounterValue},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	v, ok := out.Attributes[fieldCounterValue].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %s: missing value", name)
	}
	return strconv.ParseInt(v.Value, 10, 64)
}
