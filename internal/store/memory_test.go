package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/phrazzld/taskquery-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInput(title string) domain.TaskInput {
	return domain.TaskInput{
		Title:       title,
		Description: "description of " + title,
		Status:      domain.StatusPending,
	}
}

func TestMemoryTaskStore_CreateAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryTaskStore(nil)

	due := domain.MustParseDate("2025-07-25")
	in := newInput("Complete Report")
	in.DueDate = &due

	created, err := s.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, in.Title, created.Title)
	assert.Equal(t, in.Description, created.Description)
	assert.Equal(t, in.Status, created.Status)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2025-07-25", created.DueDate.String())

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, created, tasks[0])
	assert.Equal(t, "2025-07-25", tasks[0].DueDate.String())
}

func TestMemoryTaskStore_InsertionOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryTaskStore(nil)

	var ids []string
	for i := 0; i < 5; i++ {
		task, err := s.Create(ctx, newInput(fmt.Sprintf("task %d", i)))
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	first, err := s.List(ctx)
	require.NoError(t, err)
	second, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second, "listing twice without writes must be idempotent")

	for i, task := range first {
		assert.Equal(t, ids[i], task.ID)
	}

	extra, err := s.Create(ctx, newInput("last"))
	require.NoError(t, err)
	third, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, third, len(first)+1)
	assert.Equal(t, extra.ID, third[len(third)-1].ID)
}

func TestMemoryTaskStore_SnapshotIsolation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryTaskStore(nil)

	due := domain.MustParseDate("2025-07-19")
	in := newInput("Review PR")
	in.DueDate = &due
	_, err := s.Create(ctx, in)
	require.NoError(t, err)

	snapshot, err := s.List(ctx)
	require.NoError(t, err)

	_, err = s.Create(ctx, newInput("Fix Bug"))
	require.NoError(t, err)
	assert.Len(t, snapshot, 1, "earlier snapshot must not grow")

	snapshot[0].Title = "mutated"
	*snapshot[0].DueDate = domain.MustParseDate("2000-01-01")

	fresh, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Review PR", fresh[0].Title)
	assert.Equal(t, "2025-07-19", fresh[0].DueDate.String())
}

func TestMemoryTaskStore_InvalidInputLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryTaskStore(nil)

	_, err := s.Create(ctx, domain.TaskInput{Title: "x", Description: "y", Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = s.Create(ctx, domain.TaskInput{Description: "y", Status: domain.StatusPending})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	assert.Equal(t, 0, s.Len())
}

func TestMemoryTaskStore_DuplicateIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	calls := 0
	gen := func() string {
		calls++
		if calls <= 2 {
			return "same"
		}
		return fmt.Sprintf("id-%d", calls)
	}
	s := NewMemoryTaskStore(nil, WithIDGenerator(gen))

	first, err := s.Create(ctx, newInput("one"))
	require.NoError(t, err)
	assert.Equal(t, "same", first.ID)

	second, err := s.Create(ctx, newInput("two"))
	require.NoError(t, err)
	assert.Equal(t, "id-3", second.ID)

	stuck := NewMemoryTaskStore(nil, WithIDGenerator(func() string { return "fixed" }))
	_, err = stuck.Create(ctx, newInput("a"))
	require.NoError(t, err)
	_, err = stuck.Create(ctx, newInput("b"))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, stuck.Len())
}

func TestMemoryTaskStore_ConcurrentCreates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewMemoryTaskStore(nil)

	const n = 200
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.Create(ctx, newInput(fmt.Sprintf("task-%d", i))); err != nil {
				errs <- err
			}
			// Interleave reads with the writes.
			if _, err := s.List(ctx); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, n)

	seen := make(map[string]bool, n)
	titles := make(map[string]bool, n)
	for _, task := range tasks {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
		titles[task.Title] = true
	}
	assert.Len(t, titles, n)
}
