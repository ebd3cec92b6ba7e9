package dynamodb_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTable is an in-memory table keyed by the "id" string attribute. It understands the
// attribute_exists / attribute_not_exists conditions and single equality filters.
type fakeTable struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue
	err   error
	scans int
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := keyOf(in.Item)
	if err := f.check(id, in.ConditionExpression); err != nil {
		return nil, err
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	id := keyOf(in.Key)
	if err := f.check(id, in.ConditionExpression); err != nil {
		return nil, err
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeTable) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++
	if f.err != nil {
		return nil, f.err
	}

	ids := make([]string, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []map[string]types.AttributeValue
	for _, id := range ids {
		item := f.items[id]
		if in.FilterExpression != nil && !matches(item, in) {
			continue
		}
		out = append(out, item)
	}
	return &dynamodb.ScanOutput{Items: out, Count: int32(len(out))}, nil
}

func (f *fakeTable) check(id string, condition *string) error {
	_, exists := f.items[id]
	switch aws.ToString(condition) {
	case "attribute_not_exists(id)":
		if exists {
			return &types.ConditionalCheckFailedException{Message: aws.String("exists")}
		}
	case "attribute_exists(id)":
		if !exists {
			return &types.ConditionalCheckFailedException{Message: aws.String("missing")}
		}
	}
	return nil
}

func matches(item map[string]types.AttributeValue, in *dynamodb.ScanInput) bool {
	lhs, rhs, ok := strings.Cut(aws.ToString(in.FilterExpression), " = ")
	if !ok {
		return false
	}
	if name, aliased := in.ExpressionAttributeNames[lhs]; aliased {
		lhs = name
	}
	want, ok := in.ExpressionAttributeValues[rhs].(*types.AttributeValueMemberN)
	if !ok {
		return false
	}
	got, ok := item[lhs].(*types.AttributeValueMemberN)
	return ok && got.Value == want.Value
}

func keyOf(item map[string]types.AttributeValue) string {
	if id, ok := item["id"].(*types.AttributeValueMemberS); ok {
		return id.Value
	}
	return ""
}

var errBoom = errors.New("boom")
