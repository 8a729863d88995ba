package s3

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pixgo/blobstore"
)

// fakeDynamoDB is an in-memory DynamoDB that honors the conditional
// put the catalog relies on.
type fakeDynamoDB struct {
	mu    sync.RWMutex
	items map[string]map[string]ddbtypes.AttributeValue
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{items: make(map[string]map[string]ddbtypes.AttributeValue)}
}

func itemKey(item map[string]ddbtypes.AttributeValue) string {
	modelKey := item["model_key"].(*ddbtypes.AttributeValueMemberS).Value
	version := item["version"].(*ddbtypes.AttributeValueMemberN).Value
	return modelKey + ":" + version
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := itemKey(params.Item)
	if aws.ToString(params.ConditionExpression) == "attribute_not_exists(version)" {
		if _, exists := f.items[key]; exists {
			return nil, &ddbtypes.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}
	f.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	modelKey := params.ExpressionAttributeValues[":k"].(*ddbtypes.AttributeValueMemberS).Value

	var items []map[string]ddbtypes.AttributeValue
	for _, item := range f.items {
		if item["model_key"].(*ddbtypes.AttributeValueMemberS).Value == modelKey {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		vi, _ := strconv.ParseInt(items[i]["version"].(*ddbtypes.AttributeValueMemberN).Value, 10, 64)
		vj, _ := strconv.ParseInt(items[j]["version"].(*ddbtypes.AttributeValueMemberN).Value, 10, 64)
		return vi > vj
	})
	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}
	return &dynamodb.QueryOutput{Items: items}, nil
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if item, ok := f.items[itemKey(params.Key)]; ok {
		return &dynamodb.GetItemOutput{Item: item}, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func TestCatalogPublishSequence(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(newFakeDynamoDB(), "bundles")

	for i := 1; i <= 3; i++ {
		version, err := catalog.Publish(ctx, "teapot", fmt.Sprintf("teapot-%05d.pcm", i))
		require.NoError(t, err)
		assert.Equal(t, int64(i), version)
	}

	current, err := catalog.Current(ctx, "teapot")
	require.NoError(t, err)
	assert.Equal(t, int64(3), current.Version)
	assert.Equal(t, "teapot-00003.pcm", current.Bundle)
	assert.Equal(t, "teapot", current.ModelKey)

	older, err := catalog.Version(ctx, "teapot", 2)
	require.NoError(t, err)
	assert.Equal(t, "teapot-00002.pcm", older.Bundle)
}

func TestCatalogKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(newFakeDynamoDB(), "bundles")

	_, err := catalog.Publish(ctx, "teapot", "teapot-1.pcm")
	require.NoError(t, err)
	_, err = catalog.Publish(ctx, "bunny", "bunny-1.pcm")
	require.NoError(t, err)
	version, err := catalog.Publish(ctx, "bunny", "bunny-2.pcm")
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	current, err := catalog.Current(ctx, "teapot")
	require.NoError(t, err)
	assert.Equal(t, "teapot-1.pcm", current.Bundle)
}

func TestCatalogCurrentEmpty(t *testing.T) {
	catalog := NewCatalog(newFakeDynamoDB(), "bundles")

	_, err := catalog.Current(context.Background(), "ghost")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = catalog.Version(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCatalogPublishedAt(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(newFakeDynamoDB(), "bundles")

	published := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	catalog.now = func() time.Time { return published }

	_, err := catalog.Publish(ctx, "teapot", "teapot-1.pcm")
	require.NoError(t, err)

	current, err := catalog.Current(ctx, "teapot")
	require.NoError(t, err)
	assert.True(t, current.PublishedAt.Equal(published))
}

func TestCatalogConcurrentPublish(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalog(newFakeDynamoDB(), "bundles")

	_, err := catalog.Publish(ctx, "teapot", "teapot-00001.pcm")
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, conflicts := 0, 0

	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := catalog.Publish(ctx, "teapot", fmt.Sprintf("teapot-%05d.pcm", i+2))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrConcurrentPublish):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Greater(t, successes, 0)
	assert.Equal(t, 5, successes+conflicts)
}

func TestCatalogStoreResolvesCurrent(t *testing.T) {
	ctx := context.Background()
	inner := blobstore.NewMemoryStore()
	catalog := NewCatalog(newFakeDynamoDB(), "bundles")
	store := NewCatalogStore(inner, catalog, "teapot")

	// Nothing published yet.
	_, err := store.Open(ctx, CurrentBundle)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	version, err := store.Publish(ctx, "teapot-00001.pcm", []byte("v1 payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	version, err = store.Publish(ctx, "teapot-00002.pcm", []byte("v2 payload"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	blob, err := store.Open(ctx, CurrentBundle)
	require.NoError(t, err)
	got, err := blob.(blobstore.Mappable).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "v2 payload", string(got))
	require.NoError(t, blob.Close())

	// Direct names bypass the catalog.
	blob, err = store.Open(ctx, "teapot-00001.pcm")
	require.NoError(t, err)
	got, err = blob.(blobstore.Mappable).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "v1 payload", string(got))
	require.NoError(t, blob.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"teapot-00001.pcm", "teapot-00002.pcm"}, names)
}
