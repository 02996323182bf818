package cronjob

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct{ n atomic.Int32 }

func (c *countingSweeper) Sweep(time.Time) int {
	c.n.Add(1)
	return 1
}

type countingPruner struct {
	n    atomic.Int32
	idle atomic.Int64
}

func (c *countingPruner) Prune(idle time.Duration) int {
	c.n.Add(1)
	c.idle.Store(int64(idle))
	return 0
}

func TestSchedulerRunsJobs(t *testing.T) {
	s := NewScheduler()
	sw := &countingSweeper{}
	pr := &countingPruner{}

	require.NoError(t, s.AddSweep("sessions", "@every 1s", sw))
	require.NoError(t, s.AddPrune("forms", "@every 1s", pr, time.Hour))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return sw.n.Load() > 0 && pr.n.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, int64(time.Hour), pr.idle.Load())
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := NewScheduler()
	assert.Error(t, s.AddSweep("sessions", "every now and then", &countingSweeper{}))
}
