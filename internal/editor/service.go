package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/generation"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
)

// Generator produces raw diagram text from a prompt.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// Credentials is the read side of the per-session credential slot.
type Credentials interface {
	Get(ctx context.Context, sessionID string) (string, error)
	IsSet(ctx context.Context, sessionID string) (bool, error)
}

type Service struct {
	reg   *Registry
	creds Credentials
	gen   Generator
	cat   *catalog.Catalog
}

func NewService(reg *Registry, creds Credentials, gen Generator, cat *catalog.Catalog) *Service {
	return &Service{reg: reg, creds: creds, gen: gen, cat: cat}
}

// Generate runs one prompt-to-diagram cycle for the session. On success the sanitized
// markup replaces the workspace markup and a render is scheduled; on failure the
// error is recorded in the workspace error slot and returned. The in-flight flag
// covers the whole cycle, including the markup update.
func (s *Service) Generate(ctx context.Context, sessionID, prompt string) (State, error) {
	w := s.reg.Workspace(sessionID)

	if !w.BeginGeneration() {
		return s.snapshot(ctx, sessionID, w), ErrGenerationInProgress
	}
	err := s.runGeneration(ctx, sessionID, w, prompt)
	return s.snapshot(context.WithoutCancel(ctx), sessionID, w), err
}

// runGeneration owns the in-flight flag from a successful BeginGeneration until it
// returns, panics included.
func (s *Service) runGeneration(ctx context.Context, sessionID string, w *Workspace, prompt string) error {
	defer w.EndGeneration()
	logger := logging.NewLogger(ctx)

	markup, err := s.generate(ctx, sessionID, w, prompt)
	if err != nil {
		// A request the caller walked away from leaves no inline error behind.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logger.LogInfof("editor.generate", "session=%s abandoned: %v", sessionID, err)
			return err
		}
		logger.LogWarnf("editor.generate", "session=%s: %v", sessionID, err)
		w.SetError(ErrorMessage(err))
		return err
	}

	w.AppendHistory("user", strings.TrimSpace(prompt))
	w.SetMarkup(markup)
	w.AppendHistory("assistant", markup)
	logger.LogInfof("editor.generate", "session=%s markup_len=%d", sessionID, len(markup))
	return nil
}

// generate checks the credential and prompt, then spends a rate-limit token right
// before the upstream call so rejected submissions never count against the budget.
func (s *Service) generate(ctx context.Context, sessionID string, w *Workspace, prompt string) (string, error) {
	key, err := s.creds.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	if strings.TrimSpace(key) == "" {
		return "", generation.ErrMissingCredential
	}
	if strings.TrimSpace(prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}
	if !w.allowGeneration() {
		return "", ErrRateLimited
	}

	raw, err := s.gen.Generate(ctx, key, prompt)
	if err != nil {
		return "", err
	}

	markup := generation.Sanitize(raw)
	if markup == "" {
		return "", generation.ErrEmptyGeneration
	}
	return markup, nil
}

// UpdateMarkup records a manual edit. Empty markup is allowed while editing.
func (s *Service) UpdateMarkup(ctx context.Context, sessionID, markup string) State {
	w := s.reg.Workspace(sessionID)
	w.SetMarkup(markup)
	return s.snapshot(ctx, sessionID, w)
}

func (s *Service) Reset(ctx context.Context, sessionID string) State {
	w := s.reg.Workspace(sessionID)
	w.Reset(s.cat.DefaultDiagram())
	return s.snapshot(ctx, sessionID, w)
}

func (s *Service) ApplyTemplate(ctx context.Context, sessionID, name string) (State, error) {
	t, err := s.cat.Template(name)
	if err != nil {
		return State{}, err
	}
	w := s.reg.Workspace(sessionID)
	w.SetMarkup(t.Markup)
	return s.snapshot(ctx, sessionID, w), nil
}

// Markup is the session's current markup.
func (s *Service) Markup(sessionID string) string {
	return s.reg.Workspace(sessionID).Markup()
}

func (s *Service) Snapshot(ctx context.Context, sessionID string) State {
	return s.snapshot(ctx, sessionID, s.reg.Workspace(sessionID))
}

func (s *Service) snapshot(ctx context.Context, sessionID string, w *Workspace) State {
	st := w.Snapshot()
	set, err := s.creds.IsSet(ctx, sessionID)
	if err != nil {
		logging.NewLogger(ctx).LogErrorf("editor.snapshot", "session=%s: credential lookup: %v", sessionID, err)
	}
	st.CredentialSet = set
	return st
}

// ErrorMessage is the text shown next to the preview for a failed generation.
func ErrorMessage(err error) string {
	var ue *generation.UpstreamError
	switch {
	case errors.Is(err, generation.ErrMissingCredential):
		return "Please add your OpenAI API key in settings before generating."
	case errors.Is(err, generation.ErrEmptyPrompt):
		return "Please enter a prompt."
	case errors.Is(err, generation.ErrEmptyGeneration):
		return "The generation service returned no diagram. Try rephrasing the prompt."
	case errors.Is(err, context.DeadlineExceeded):
		return "The generation took too long. Please try again."
	case errors.Is(err, context.Canceled):
		return "The generation was cancelled."
	case errors.As(err, &ue):
		return ue.Message
	default:
		return err.Error()
	}
}
