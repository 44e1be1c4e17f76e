package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type batchOpKind int

const (
	opSet batchOpKind = iota
	opUpdate
	opDelete
)

type batchOp struct {
	kind       batchOpKind
	collection string
	id         string
	doc        Document
}

// Batch accumulates multi-document writes committed as a single
// all-or-nothing operation.
type Batch struct {
	store *Store
	ops   []batchOp
}

// Batch starts a new write batch.
func (s *Store) Batch() *Batch {
	return &Batch{store: s}
}

// Set queues a full document write.
func (b *Batch) Set(collection, id string, doc Document) *Batch {
	b.ops = append(b.ops, batchOp{kind: opSet, collection: collection, id: id, doc: doc})
	return b
}

// Update queues a field merge into an existing document.
func (b *Batch) Update(collection, id string, fields Document) *Batch {
	b.ops = append(b.ops, batchOp{kind: opUpdate, collection: collection, id: id, doc: fields})
	return b
}

// Delete queues a document removal.
func (b *Batch) Delete(collection, id string) *Batch {
	b.ops = append(b.ops, batchOp{kind: opDelete, collection: collection, id: id})
	return b
}

// Commit applies every queued operation atomically. Merge bases for
// updates are read under WATCH and the whole transaction retried when a
// watched collection changes before EXEC, so concurrent merges on the
// same document all land. The batch either lands whole or not at all.
func (b *Batch) Commit(ctx context.Context) error {
	watched := b.watchedKeys()
	if len(watched) == 0 {
		if err := b.apply(ctx, b.store.client); err != nil {
			return err
		}
		b.notifyAll(ctx)
		return nil
	}

	for attempt := 0; attempt < maxMergeRetries; attempt++ {
		err := b.store.client.Watch(ctx, func(tx *redis.Tx) error {
			return b.apply(ctx, tx)
		}, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return err
		}
		b.notifyAll(ctx)
		return nil
	}
	return fmt.Errorf("batch commit: %w", redis.TxFailedErr)
}

// watchedKeys lists the collection keys whose documents serve as merge
// bases for queued updates.
func (b *Batch) watchedKeys() []string {
	keys := make([]string, 0, len(b.ops))
	seen := make(map[string]bool)
	for _, op := range b.ops {
		if op.kind != opUpdate {
			continue
		}
		key := collectionKey(op.collection)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

// batchClient is the slice of the Redis API a commit needs; both the
// plain client and a WATCH transaction satisfy it.
type batchClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

func (b *Batch) apply(ctx context.Context, client batchClient) error {
	type resolved struct {
		op      batchOp
		encoded []byte
	}

	writes := make([]resolved, 0, len(b.ops))
	for _, op := range b.ops {
		switch op.kind {
		case opSet:
			encoded, err := json.Marshal(stripUnset(op.doc))
			if err != nil {
				return fmt.Errorf("batch encode %s/%s: %w", op.collection, op.id, err)
			}
			writes = append(writes, resolved{op: op, encoded: encoded})
		case opUpdate:
			raw, err := client.HGet(ctx, collectionKey(op.collection), op.id).Result()
			if errors.Is(err, redis.Nil) {
				return fmt.Errorf("batch update %s/%s: %w", op.collection, op.id, ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("batch update %s/%s: %w", op.collection, op.id, err)
			}

			var base Document
			if err := json.Unmarshal([]byte(raw), &base); err != nil {
				return fmt.Errorf("batch decode %s/%s: %w", op.collection, op.id, err)
			}
			mergeFields(base, op.doc)

			encoded, err := json.Marshal(base)
			if err != nil {
				return fmt.Errorf("batch encode %s/%s: %w", op.collection, op.id, err)
			}
			writes = append(writes, resolved{op: op, encoded: encoded})
		case opDelete:
			writes = append(writes, resolved{op: op})
		}
	}

	_, err := client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, w := range writes {
			if w.op.kind == opDelete {
				pipe.HDel(ctx, collectionKey(w.op.collection), w.op.id)
				continue
			}
			pipe.HSet(ctx, collectionKey(w.op.collection), w.op.id, w.encoded)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch commit: %w", err)
	}
	return nil
}

func (b *Batch) notifyAll(ctx context.Context) {
	for _, op := range b.ops {
		b.store.notify(ctx, op.collection, op.id)
	}
}
