package docstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store := NewWithClient(redis.NewClient(&redis.Options{Addr: s.Addr()}))
	t.Cleanup(func() { store.Close() })
	return store, s
}

func TestSetAndGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	err := store.Set(ctx, "projects", "p1", Document{
		"id":   "p1",
		"name": "HackMate",
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", doc["id"])
	assert.Equal(t, "HackMate", doc["name"])
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	_, err := store.Get(context.Background(), "projects", "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetStripsUnsetFields(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	var absent *string
	err := store.Set(ctx, "tasks", "t1", Document{
		"id":          "t1",
		"title":       "Build the demo",
		"assignee_id": absent,
		"labels":      []string(nil),
	})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "tasks", "t1")
	require.NoError(t, err)
	assert.NotContains(t, doc, "assignee_id")
	assert.NotContains(t, doc, "labels")
	assert.Equal(t, "Build the demo", doc["title"])
}

func TestQueryFilters(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tasks", "t1", Document{"id": "t1", "project_id": "p1", "status": "todo"}))
	require.NoError(t, store.Set(ctx, "tasks", "t2", Document{"id": "t2", "project_id": "p1", "status": "done"}))
	require.NoError(t, store.Set(ctx, "tasks", "t3", Document{"id": "t3", "project_id": "p2", "status": "todo"}))

	docs, err := store.Query(ctx, "tasks", Where("project_id", "p1"))
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = store.Query(ctx, "tasks", Where("project_id", "p1"), Where("status", "todo"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "t1", docs[0]["id"])

	docs, err = store.Query(ctx, "tasks", Where("project_id", "p9"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUpdateMergesFields(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "projects", "p1", Document{
		"id":     "p1",
		"name":   "HackMate",
		"status": "ideation",
	}))

	err := store.Update(ctx, "projects", "p1", Document{"status": "building"})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, "building", doc["status"])
	assert.Equal(t, "HackMate", doc["name"])
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	store, _ := setupTestStore(t)

	err := store.Update(context.Background(), "projects", "missing", Document{"status": "building"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "projects", "p1", Document{"id": "p1"}))
	require.NoError(t, store.Delete(ctx, "projects", "p1"))

	_, err := store.Get(ctx, "projects", "p1")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is not an error.
	require.NoError(t, store.Delete(ctx, "projects", "p1"))
}

func TestBatchCommitAppliesAllOperations(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "projects", "p1", Document{
		"id":         "p1",
		"member_ids": []string{"u1"},
	}))
	require.NoError(t, store.Set(ctx, "project_roles", "p1_u2", Document{"user_id": "u2"}))

	err := store.Batch().
		Update("projects", "p1", Document{"member_ids": []string{"u1", "u2"}}).
		Set("project_roles", "p1_u3", Document{"user_id": "u3"}).
		Delete("project_roles", "p1_u2").
		Commit(ctx)
	require.NoError(t, err)

	doc, err := store.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, []any{"u1", "u2"}, doc["member_ids"])

	_, err = store.Get(ctx, "project_roles", "p1_u3")
	require.NoError(t, err)

	_, err = store.Get(ctx, "project_roles", "p1_u2")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBatchUpdateMissingAbortsWholeBatch(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	err := store.Batch().
		Set("projects", "p1", Document{"id": "p1"}).
		Update("projects", "missing", Document{"status": "building"}).
		Commit(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	// The queued set must not have landed.
	_, err = store.Get(ctx, "projects", "p1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateArrayUnionAndRemove(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	err := store.Set(ctx, "projects", "p1", Document{"id": "p1", "member_ids": []string{"u1"}})
	require.NoError(t, err)

	err = store.Update(ctx, "projects", "p1", Document{"member_ids": ArrayUnion("u1", "u2")})
	require.NoError(t, err)

	doc, err := store.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, []any{"u1", "u2"}, doc["member_ids"])

	err = store.Update(ctx, "projects", "p1", Document{"member_ids": ArrayRemove("u1")})
	require.NoError(t, err)

	doc, err = store.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, []any{"u2"}, doc["member_ids"])
}

func TestUpdateConcurrentMergesAllLand(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	err := store.Set(ctx, "projects", "p1", Document{"id": "p1"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			field := fmt.Sprintf("field_%d", i)
			assert.NoError(t, store.Update(ctx, "projects", "p1", Document{field: i}))
		}(i)
	}
	wg.Wait()

	doc, err := store.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		assert.Contains(t, doc, fmt.Sprintf("field_%d", i))
	}
}

func TestBatchConcurrentMergesAllLand(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	err := store.Set(ctx, "projects", "p1", Document{"id": "p1", "member_ids": []string{"u1"}})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, userID := range []string{"u2", "u3", "u4"} {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			err := store.Batch().
				Update("projects", "p1", Document{"member_ids": ArrayUnion(userID)}).
				Set("project_roles", "p1_"+userID, Document{"user_id": userID}).
				Commit(ctx)
			assert.NoError(t, err)
		}(userID)
	}
	wg.Wait()

	doc, err := store.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	members, ok := doc["member_ids"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"u1", "u2", "u3", "u4"}, members)
}
