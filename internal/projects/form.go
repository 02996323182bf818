// Package projects holds the project request form and its per-session registry.
package projects

import (
	"context"
	"sync"

	"github.com/launchpad-labs/project-starter/internal/generation"
	"github.com/launchpad-labs/project-starter/internal/logging"
	"github.com/launchpad-labs/project-starter/internal/projects/domain"
)

// Form is the state behind one project request form. Safe for concurrent use.
type Form struct {
	generator generation.Generator

	mu    sync.Mutex
	state domain.FormState
}

func NewForm(generator generation.Generator) *Form {
	return &Form{generator: generator}
}

func (f *Form) SetProjectName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.ProjectName = name
}

func (f *Form) SetProjectType(t domain.ProjectType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.ProjectType = t
}

func (f *Form) SetLanguage(l domain.Language) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Language = l
}

// State returns a snapshot.
func (f *Form) State() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit sends the composed prompt to the generator and stores the reply.
//
// An incomplete form is ignored. A generation failure is logged and leaves
// Result untouched. The only error returned is ErrSubmissionInFlight, when an
// earlier Submit has not resolved yet.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.state.Complete() {
		f.mu.Unlock()
		return nil
	}
	if f.state.Loading {
		f.mu.Unlock()
		return domain.ErrSubmissionInFlight
	}
	prompt := domain.BuildPrompt(f.state.ProjectName, f.state.ProjectType, f.state.Language)
	f.state.Loading = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.state.Loading = false
		f.mu.Unlock()
	}()

	text, err := f.generator.Generate(ctx, generation.Request{
		Prompt:       prompt,
		ResponseType: generation.ResponseTypeText,
	})
	if err != nil {
		logging.NewLogger(ctx).LogError("create_project", err)
		return nil
	}

	f.mu.Lock()
	f.state.Result = text
	f.mu.Unlock()
	return nil
}
