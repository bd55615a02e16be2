package logic

import (
	"context"
	"magpie/shared"
	"sync"
)

// ITaskRegistry runs background work single-flight per tag. Add cancels any
// still-running task with the same tag before admitting the new one; the
// cancel is advisory, delivered through the task's context.
type ITaskRegistry interface {
	Add(tag string, fn func(ctx context.Context)) int
	Cancel(id int) bool
	CancelTag(tag string) int
	HasRunningTasksForTags(tags ...string) bool
	HasRunningTask() bool
	Shutdown()
}

type taskEntry struct {
	tag    string
	cancel context.CancelFunc
}

type taskRegistry struct {
	logger  shared.ILogger
	metrics IMetrics
	mu      sync.Mutex
	nextId  int
	running map[int]*taskEntry
	wg      sync.WaitGroup
}

func NewTaskRegistry(logger shared.ILogger, metrics IMetrics) ITaskRegistry {
	return &taskRegistry{
		logger:  logger,
		metrics: metrics,
		running: make(map[int]*taskEntry),
	}
}

func (tr *taskRegistry) Add(tag string, fn func(ctx context.Context)) int {

	tr.mu.Lock()
	for _, entry := range tr.running {
		if entry.tag == tag {
			entry.cancel()
		}
	}
	tr.nextId += 1
	id := tr.nextId
	ctx, cancel := context.WithCancel(context.Background())
	tr.running[id] = &taskEntry{tag: tag, cancel: cancel}
	tr.metrics.TasksRunning(len(tr.running))
	tr.wg.Add(1)
	tr.mu.Unlock()

	tr.logger.Debugf("Task %d (%s) starting", id, tag)
	go func() {
		defer func() {
			cancel()
			tr.mu.Lock()
			delete(tr.running, id)
			tr.metrics.TasksRunning(len(tr.running))
			tr.mu.Unlock()
			tr.wg.Done()
			tr.logger.Debugf("Task %d (%s) finished", id, tag)
		}()
		fn(ctx)
	}()
	return id
}

func (tr *taskRegistry) Cancel(id int) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	entry, ok := tr.running[id]
	if !ok {
		return false
	}
	entry.cancel()
	return true
}

func (tr *taskRegistry) CancelTag(tag string) int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	n := 0
	for _, entry := range tr.running {
		if entry.tag == tag {
			entry.cancel()
			n += 1
		}
	}
	return n
}

func (tr *taskRegistry) HasRunningTasksForTags(tags ...string) bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	for _, entry := range tr.running {
		for _, tag := range tags {
			if entry.tag == tag {
				return true
			}
		}
	}
	return false
}

func (tr *taskRegistry) HasRunningTask() bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.running) != 0
}

// Shutdown cancels everything and waits for running tasks to drain.
func (tr *taskRegistry) Shutdown() {
	tr.mu.Lock()
	for _, entry := range tr.running {
		entry.cancel()
	}
	tr.mu.Unlock()
	tr.wg.Wait()
}
