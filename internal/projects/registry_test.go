package projects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchpad-labs/project-starter/internal/projects/domain"
)

func TestRegistry_GetResetDrop(t *testing.T) {
	r := NewRegistry(&fakeGenerator{})

	f := r.Get("s1")
	f.SetProjectName("kept")
	assert.Same(t, f, r.Get("s1"))

	fresh := r.Reset("s1")
	assert.NotSame(t, f, fresh)
	assert.Empty(t, r.Get("s1").State().ProjectName)

	r.Drop("s1")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Prune(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(&fakeGenerator{})
	r.now = func() time.Time { return now }

	r.Get("old")
	r.Get("busy").state.Loading = true

	now = now.Add(2 * time.Hour)
	r.Get("fresh")

	assert.Equal(t, 1, r.Prune(time.Hour))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ResetKeepsFormInFlight(t *testing.T) {
	gen := &fakeGenerator{
		reply:   "done",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := NewRegistry(gen)

	f := r.Get("ctx")
	fill(f)

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-gen.started

	assert.Same(t, f, r.Reset("ctx"))

	again := r.Get("ctx")
	fill(again)
	assert.ErrorIs(t, again.Submit(context.Background()), domain.ErrSubmissionInFlight)

	close(gen.release)
	require.NoError(t, <-done)
	assert.Len(t, gen.calls(), 1)
	assert.Equal(t, "done", r.Get("ctx").State().Result)

	assert.NotSame(t, f, r.Reset("ctx"))
	assert.Empty(t, r.Get("ctx").State().Result)
}
