// Package docstore is a thin typed wrapper over the remote document
// collection store. It provides get/query/set/update/delete primitives,
// filtered change subscriptions, and atomic multi-document batches.
//
// Documents are stored one Redis hash per collection, one JSON-encoded
// document per hash field, keyed by document id. Every successful write
// publishes a change notification on the collection's watch channel and
// on the document's own watch channel.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("docstore: document not found")

// maxMergeRetries bounds the optimistic retry loop around WATCH-guarded
// merges.
const maxMergeRetries = 64

// Document is a schema-less record as held by the backing store.
type Document map[string]any

// Filter restricts a query or subscription to documents whose field
// equals the given value.
type Filter struct {
	Field string
	Value any
}

// Where builds a field-equals filter.
func Where(field string, value any) Filter {
	return Filter{Field: field, Value: value}
}

// Store wraps the Redis client backing the document collections.
type Store struct {
	client *redis.Client
}

// Open connects to the document store at the given Redis address.
func Open(addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to document store: %w", err)
	}

	return &Store{client: client}, nil
}

// NewWithClient creates a Store from an existing Redis client.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func collectionKey(collection string) string {
	return "doc:" + collection
}

func watchChannel(collection string) string {
	return "watch:" + collection
}

func docWatchChannel(collection, id string) string {
	return "watch:" + collection + ":" + id
}

// Get returns the document with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) (Document, error) {
	raw, err := s.client.HGet(ctx, collectionKey(collection), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

// Query returns all documents in the collection matching every filter.
func (s *Store) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	raw, err := s.client.HGetAll(ctx, collectionKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(raw))
	for id, encoded := range raw {
		var doc Document
		if err := json.Unmarshal([]byte(encoded), &doc); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		if matches(doc, filters) {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// Set writes the full document at id, replacing any previous value.
// Fields with an unset value are stripped before sending.
func (s *Store) Set(ctx context.Context, collection, id string, doc Document) error {
	encoded, err := json.Marshal(stripUnset(doc))
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}

	if err := s.client.HSet(ctx, collectionKey(collection), id, encoded).Err(); err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}

	s.notify(ctx, collection, id)
	return nil
}

// Update merges the given fields into the existing document. The merge
// base is read under WATCH and the write retried when the collection
// changes before EXEC, so concurrent merges on the same document all
// land. It fails with ErrNotFound if the document does not exist.
func (s *Store) Update(ctx context.Context, collection, id string, fields Document) error {
	key := collectionKey(collection)

	merge := func(tx *redis.Tx) error {
		raw, err := tx.HGet(ctx, key, id).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var doc Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		mergeFields(doc, fields)

		encoded, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", collection, id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, encoded)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxMergeRetries; attempt++ {
		err := s.client.Watch(ctx, merge, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", collection, id, err)
		}
		s.notify(ctx, collection, id)
		return nil
	}
	return fmt.Errorf("update %s/%s: %w", collection, id, redis.TxFailedErr)
}

// Delete removes the document. Deleting an absent document is not an
// error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.client.HDel(ctx, collectionKey(collection), id).Err(); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}

	s.notify(ctx, collection, id)
	return nil
}

func (s *Store) notify(ctx context.Context, collection, id string) {
	// Notification failure does not fail the write; subscribers simply
	// miss one change and catch up on the next.
	s.client.Publish(ctx, watchChannel(collection), id)
	s.client.Publish(ctx, docWatchChannel(collection, id), id)
}

func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		if doc[f.Field] != f.Value {
			return false
		}
	}
	return true
}

// stripUnset drops fields holding unset values so the backing store is
// never asked to write an undefined-valued field.
func stripUnset(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if isUnset(v) {
			continue
		}
		out[k] = v
	}
	return out
}

func isUnset(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	default:
		return false
	}
}
