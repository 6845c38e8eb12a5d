// Package mocks provides hand-maintained testify mocks for the DynamoDB client
// surface used by the store.
package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"
)

// DynamoDBAPI is a mock implementation of the store's DynamoDBAPI interface.
type DynamoDBAPI struct {
	mock.Mock
}

func (_m *DynamoDBAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := _m.Called(ctx, params)
	var out *dynamodb.GetItemOutput
	if args.Get(0) != nil {
		out = args.Get(0).(*dynamodb.GetItemOutput)
	}
	return out, args.Error(1)
}

func (_m *DynamoDBAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := _m.Called(ctx, params)
	var out *dynamodb.PutItemOutput
	if args.Get(0) != nil {
		out = args.Get(0).(*dynamodb.PutItemOutput)
	}
	return out, args.Error(1)
}

func (_m *DynamoDBAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := _m.Called(ctx, params)
	var out *dynamodb.DeleteItemOutput
	if args.Get(0) != nil {
		out = args.Get(0).(*dynamodb.DeleteItemOutput)
	}
	return out, args.Error(1)
}

func (_m *DynamoDBAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	args := _m.Called(ctx, params)
	var out *dynamodb.UpdateItemOutput
	if args.Get(0) != nil {
		out = args.Get(0).(*dynamodb.UpdateItemOutput)
	}
	return out, args.Error(1)
}

func (_m *DynamoDBAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := _m.Called(ctx, params)
	var out *dynamodb.QueryOutput
	if args.Get(0) != nil {
		out = args.Get(0).(*dynamodb.QueryOutput)
	}
	return out, args.Error(1)
}
