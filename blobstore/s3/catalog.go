package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/pixgo/blobstore"
)

// ErrConcurrentPublish is returned when another publisher claimed the
// same version first. Retrying re-reads the latest version.
var ErrConcurrentPublish = errors.New("concurrent publish detected")

// CurrentBundle is the virtual blob name a CatalogStore resolves to
// the most recently published bundle.
const CurrentBundle = "CURRENT"

// DynamoDBClient is the subset of the DynamoDB API the catalog uses.
// *dynamodb.Client implements it.
type DynamoDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Entry is one published bundle version of a model.
type Entry struct {
	ModelKey    string
	Version     int64
	Bundle      string
	PublishedAt time.Time
}

// Catalog tracks which bundle is current for each model key. Versions
// live in a DynamoDB table with model_key (S) as hash key and
// version (N) as range key; each item carries the bundle name and the
// publish time. Writes are guarded by a conditional put, so two
// publishers cannot both claim the same version.
type Catalog struct {
	client DynamoDBClient
	table  string
	now    func() time.Time
}

// NewCatalog creates a catalog on the given table.
func NewCatalog(client DynamoDBClient, table string) *Catalog {
	return &Catalog{client: client, table: table, now: time.Now}
}

// Publish records bundle as the next version of key and returns the
// version number it claimed.
func (c *Catalog) Publish(ctx context.Context, key, bundle string) (int64, error) {
	latest, err := c.latestVersion(ctx, key)
	if err != nil {
		return 0, err
	}
	version := latest + 1

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item: map[string]ddbtypes.AttributeValue{
			"model_key":    &ddbtypes.AttributeValueMemberS{Value: key},
			"version":      &ddbtypes.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
			"bundle":       &ddbtypes.AttributeValueMemberS{Value: bundle},
			"published_at": &ddbtypes.AttributeValueMemberS{Value: c.now().UTC().Format(time.RFC3339)},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var conditionFailed *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return 0, fmt.Errorf("version %d of %s: %w", version, key, ErrConcurrentPublish)
		}
		return 0, fmt.Errorf("publish %s: %w", key, err)
	}
	return version, nil
}

// Current returns the latest published entry for key.
func (c *Catalog) Current(ctx context.Context, key string) (Entry, error) {
	out, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("model_key = :k"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":k": &ddbtypes.AttributeValueMemberS{Value: key},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return Entry{}, fmt.Errorf("query catalog for %s: %w", key, err)
	}
	if len(out.Items) == 0 {
		return Entry{}, fmt.Errorf("catalog entry for %s: %w", key, blobstore.ErrNotFound)
	}
	return decodeEntry(key, out.Items[0])
}

// Version returns one specific published entry.
func (c *Catalog) Version(ctx context.Context, key string, version int64) (Entry, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]ddbtypes.AttributeValue{
			"model_key": &ddbtypes.AttributeValueMemberS{Value: key},
			"version":   &ddbtypes.AttributeValueMemberN{Value: strconv.FormatInt(version, 10)},
		},
	})
	if err != nil {
		return Entry{}, fmt.Errorf("get catalog version %d of %s: %w", version, key, err)
	}
	if len(out.Item) == 0 {
		return Entry{}, fmt.Errorf("version %d of %s: %w", version, key, blobstore.ErrNotFound)
	}
	return decodeEntry(key, out.Item)
}

func (c *Catalog) latestVersion(ctx context.Context, key string) (int64, error) {
	e, err := c.Current(ctx, key)
	if errors.Is(err, blobstore.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return e.Version, nil
}

func decodeEntry(key string, item map[string]ddbtypes.AttributeValue) (Entry, error) {
	e := Entry{ModelKey: key}

	v, ok := item["version"].(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return Entry{}, errors.New("catalog item without version attribute")
	}
	version, err := strconv.ParseInt(v.Value, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("parse catalog version: %w", err)
	}
	e.Version = version

	b, ok := item["bundle"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return Entry{}, errors.New("catalog item without bundle attribute")
	}
	e.Bundle = b.Value

	if ts, ok := item["published_at"].(*ddbtypes.AttributeValueMemberS); ok {
		if t, err := time.Parse(time.RFC3339, ts.Value); err == nil {
			e.PublishedAt = t
		}
	}
	return e, nil
}

// CatalogStore pairs a blob store with a catalog so readers can open
// CurrentBundle without knowing the latest bundle name. All other
// names pass straight through.
type CatalogStore struct {
	inner   blobstore.WritableStore
	catalog *Catalog
	key     string
}

// NewCatalogStore creates a catalog-aware view of inner for one model
// key.
func NewCatalogStore(inner blobstore.WritableStore, catalog *Catalog, modelKey string) *CatalogStore {
	return &CatalogStore{inner: inner, catalog: catalog, key: modelKey}
}

// Open resolves CurrentBundle through the catalog, then opens the
// underlying blob.
func (s *CatalogStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name == CurrentBundle {
		e, err := s.catalog.Current(ctx, s.key)
		if err != nil {
			return nil, err
		}
		name = e.Bundle
	}
	return s.inner.Open(ctx, name)
}

// Publish stores data under name and records it as the next version
// of the model key. The blob write happens first: a catalog entry
// must never point at a bundle that does not exist yet.
func (s *CatalogStore) Publish(ctx context.Context, name string, data []byte) (int64, error) {
	if err := s.inner.Put(ctx, name, data); err != nil {
		return 0, err
	}
	return s.catalog.Publish(ctx, s.key, name)
}

// Put passes through to the underlying store.
func (s *CatalogStore) Put(ctx context.Context, name string, data []byte) error {
	return s.inner.Put(ctx, name, data)
}

// Create passes through to the underlying store.
func (s *CatalogStore) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	return s.inner.Create(ctx, name)
}

// Delete passes through to the underlying store.
func (s *CatalogStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List passes through to the underlying store.
func (s *CatalogStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}
