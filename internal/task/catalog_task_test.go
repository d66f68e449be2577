package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *countingWarmer) Warmup(ctx context.Context) error {
	w.calls.Add(1)
	return w.err
}

func TestCatalogRefreshTask_RunsOnStartAndSchedule(t *testing.T) {
	w := &countingWarmer{}
	task := NewCatalogRefreshTask(w, "@every 1s")

	require.NoError(t, task.Start())
	defer task.Stop()

	assert.Eventually(t, func() bool { return w.calls.Load() >= 2 }, 3*time.Second, 50*time.Millisecond)
}

func TestCatalogRefreshTask_WarmupErrorIsLogged(t *testing.T) {
	w := &countingWarmer{err: errors.New("redis down")}
	task := NewCatalogRefreshTask(w, "0 */5 * * * *")

	require.NoError(t, task.Start())
	defer task.Stop()

	assert.Eventually(t, func() bool { return w.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestCatalogRefreshTask_InvalidSpec(t *testing.T) {
	task := NewCatalogRefreshTask(&countingWarmer{}, "every now and then")
	assert.Error(t, task.Start())
}
