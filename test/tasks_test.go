package test

import (
	"context"
	"magpie/logic"
	"magpie/test/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupRegistry(t *testing.T) logic.ITaskRegistry {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockILogger(ctrl)
	setupDummyLogger(mockLogger)
	return logic.NewTaskRegistry(mockLogger, newTestMetrics(newTestConfig(t)))
}

func TestTaskRegistrySingleFlightPerTag(t *testing.T) {

	registry := setupRegistry(t)

	started := make(chan struct{})
	canceled := make(chan struct{})
	id1 := registry.Add("alpha", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(canceled)
	})
	<-started

	// Same tag: the running task must get an advisory cancel
	id2 := registry.Add("alpha", func(ctx context.Context) {
		<-ctx.Done()
	})
	assert.Greater(t, id2, id1)
	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("earlier task with same tag was not canceled")
	}

	assert.True(t, registry.HasRunningTasksForTags("alpha"))
	assert.False(t, registry.HasRunningTasksForTags("beta"))

	registry.Shutdown()
	assert.False(t, registry.HasRunningTask())
}

func TestTaskRegistryCancelById(t *testing.T) {

	registry := setupRegistry(t)

	id := registry.Add("gamma", func(ctx context.Context) {
		<-ctx.Done()
	})
	assert.True(t, registry.HasRunningTask())
	assert.True(t, registry.Cancel(id))
	require.Eventually(t, func() bool { return !registry.HasRunningTask() },
		2*time.Second, 10*time.Millisecond)
	// Finished tasks are forgotten
	assert.False(t, registry.Cancel(id))
	assert.Equal(t, 0, registry.CancelTag("gamma"))
}

func TestTaskRegistryCancelByTag(t *testing.T) {

	registry := setupRegistry(t)

	started := make(chan struct{})
	registry.Add("epsilon", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	})
	<-started

	assert.Equal(t, 1, registry.CancelTag("epsilon"))
	require.Eventually(t, func() bool { return !registry.HasRunningTasksForTags("epsilon") },
		2*time.Second, 10*time.Millisecond)
}

func TestTaskRegistryIdsAreMonotonic(t *testing.T) {

	registry := setupRegistry(t)

	var prev int
	for i := 0; i < 5; i++ {
		id := registry.Add("delta", func(ctx context.Context) {})
		assert.Greater(t, id, prev)
		prev = id
	}
	registry.Shutdown()
}

func TestTaskRegistryDifferentTagsRunConcurrently(t *testing.T) {

	registry := setupRegistry(t)

	block := make(chan struct{})
	registry.Add("alpha", func(ctx context.Context) {
		select {
		case <-block:
		case <-ctx.Done():
		}
	})
	registry.Add("beta", func(ctx context.Context) {
		select {
		case <-block:
		case <-ctx.Done():
		}
	})
	assert.True(t, registry.HasRunningTasksForTags("alpha"))
	assert.True(t, registry.HasRunningTasksForTags("beta"))
	close(block)
	registry.Shutdown()
}
