package promptstudio

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Phase describes where a session sits in the generate-then-edit workflow.
type Phase string

const (
	// PhaseIdle: no artifact yet, prompt-to-generate.
	PhaseIdle Phase = "idle"

	// PhaseGenerating: a generate request is in flight.
	PhaseGenerating Phase = "generating"

	// PhaseReady: a generated artifact exists, no edit yet.
	PhaseReady Phase = "ready"

	// PhaseEditing: an edit request is in flight.
	PhaseEditing Phase = "editing"

	// PhaseEdited: an edited artifact exists.
	PhaseEdited Phase = "edited"
)

// RequestKind identifies the request currently in flight, if any.
type RequestKind string

const (
	KindNone     RequestKind = ""
	KindGenerate RequestKind = "generate"
	KindEdit     RequestKind = "edit"
)

// Snapshot is a copy of the session state tuple, read by the presentation
// layer. Artifacts are immutable, so sharing their pointers is safe.
type Snapshot struct {
	Phase     Phase
	Generated *Artifact
	Edited    *Artifact
	Prompt    string
	InFlight  RequestKind
	LastError string
}

// Loading reports whether a request is in flight.
func (s Snapshot) Loading() bool {
	return s.InFlight != KindNone
}

// Event describes a finished request, delivered to the session observer.
// Stale events correspond to completions that arrived after a Reset advanced
// the request id; their result was discarded.
type Event struct {
	Kind     RequestKind
	Err      string // empty on success
	Stale    bool
	Duration time.Duration
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets a structured logger for the session.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithObserver registers a hook invoked after every completion, including
// dropped stale ones. The hook runs outside the session lock, on the
// goroutine that carried the request.
func WithObserver(fn func(Event)) SessionOption {
	return func(s *Session) {
		s.observe = fn
	}
}

// Session is the workflow controller for one user session. It tracks whether
// an artifact exists yet, which request kind is in flight, and the last
// failure, and it guards the single-in-flight-request invariant: a request is
// dispatched only when no other request is outstanding.
//
// Request methods dispatch the remote call on a goroutine and return
// immediately; completions update the state under the session lock. Reset may
// race an outstanding call: each dispatch is tagged with a monotonic request
// id, Reset advances the id, and a completion whose id no longer matches is
// dropped rather than resurrecting pre-reset state.
type Session struct {
	svc     ImageService
	logger  *slog.Logger
	observe func(Event)

	mu        sync.Mutex
	phase     Phase
	generated *Artifact
	edited    *Artifact
	prompt    string
	inFlight  RequestKind
	lastError string
	requestID uint64
}

// NewSession creates a Session backed by the given image service.
func NewSession(svc ImageService, opts ...SessionOption) *Session {
	s := &Session{
		svc:    svc,
		logger: slog.Default(),
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state tuple.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Phase:     s.phase,
		Generated: s.generated,
		Edited:    s.edited,
		Prompt:    s.prompt,
		InFlight:  s.inFlight,
		LastError: s.lastError,
	}
}

// RequestGenerate starts a generate request for prompt. It returns false,
// with no state change, when the prompt is empty or another request is in
// flight; that is a UI guard, not a reportable error.
//
// Starting a generate supersedes both stored artifacts and clears the last
// error. Completion, success or failure, clears the in-flight kind and the
// prompt.
func (s *Session) RequestGenerate(ctx context.Context, prompt string) bool {
	id, ok := s.beginGenerate(prompt)
	if !ok {
		return false
	}

	go func() {
		start := time.Now()
		art, err := s.svc.Generate(ctx, prompt)
		s.finishGenerate(id, art, err, time.Since(start))
	}()
	return true
}

// RequestEdit starts an edit of the generated artifact per prompt. It returns
// false, with no state change, when the prompt is empty, no generated
// artifact exists, or another request is in flight.
func (s *Session) RequestEdit(ctx context.Context, prompt string) bool {
	id, source, ok := s.beginEdit(prompt)
	if !ok {
		return false
	}

	go func() {
		start := time.Now()
		art, err := s.svc.Edit(ctx, prompt, source)
		s.finishEdit(id, art, err, time.Since(start))
	}()
	return true
}

// Reset returns the session to its initial state: no artifacts, no prompt, no
// error, nothing in flight. Safe to call mid-flight; the outstanding call's
// eventual completion is recognized as stale and dropped.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requestID++
	s.phase = PhaseIdle
	s.generated = nil
	s.edited = nil
	s.prompt = ""
	s.inFlight = KindNone
	s.lastError = ""

	s.logger.Debug("session reset", "request_id", s.requestID)
}

func (s *Session) beginGenerate(prompt string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prompt == "" || s.inFlight != KindNone {
		return 0, false
	}

	s.requestID++
	s.inFlight = KindGenerate
	s.phase = PhaseGenerating
	s.prompt = prompt
	s.lastError = ""
	s.generated = nil
	s.edited = nil

	s.logger.Debug("generate dispatched",
		"request_id", s.requestID,
		"prompt_length", len(prompt),
	)
	return s.requestID, true
}

func (s *Session) beginEdit(prompt string) (uint64, Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prompt == "" || s.generated == nil || s.inFlight != KindNone {
		return 0, Artifact{}, false
	}

	s.requestID++
	s.inFlight = KindEdit
	s.phase = PhaseEditing
	s.prompt = prompt
	s.lastError = ""
	s.edited = nil

	s.logger.Debug("edit dispatched",
		"request_id", s.requestID,
		"prompt_length", len(prompt),
		"source_bytes", len(s.generated.Data),
	)
	return s.requestID, *s.generated, true
}

func (s *Session) finishGenerate(id uint64, art *Artifact, err error, elapsed time.Duration) {
	if err == nil && art == nil {
		err = ErrNoImage
	}

	s.mu.Lock()
	if id != s.requestID {
		s.mu.Unlock()
		s.logger.Warn("dropping stale generate completion", "request_id", id)
		s.emit(Event{Kind: KindGenerate, Err: errText(err), Stale: true, Duration: elapsed})
		return
	}

	s.inFlight = KindNone
	s.prompt = ""

	var msg string
	if err != nil {
		msg = failureMessage(err)
		s.lastError = msg
		s.phase = PhaseIdle
		s.logger.Error("generate failed",
			"duration_ms", elapsed.Milliseconds(),
			"error", msg,
		)
	} else {
		s.generated = art
		s.phase = PhaseReady
		s.logger.Info("generate completed",
			"duration_ms", elapsed.Milliseconds(),
			"bytes", len(art.Data),
			"mime_type", art.MIMEType,
		)
	}
	s.mu.Unlock()

	s.emit(Event{Kind: KindGenerate, Err: msg, Duration: elapsed})
}

func (s *Session) finishEdit(id uint64, art *Artifact, err error, elapsed time.Duration) {
	if err == nil && art == nil {
		err = ErrNoImage
	}

	s.mu.Lock()
	if id != s.requestID {
		s.mu.Unlock()
		s.logger.Warn("dropping stale edit completion", "request_id", id)
		s.emit(Event{Kind: KindEdit, Err: errText(err), Stale: true, Duration: elapsed})
		return
	}

	s.inFlight = KindNone
	s.prompt = ""

	var msg string
	if err != nil {
		// The generated artifact is still valid; only the edit failed.
		msg = failureMessage(err)
		s.lastError = msg
		s.phase = PhaseReady
		s.logger.Error("edit failed",
			"duration_ms", elapsed.Milliseconds(),
			"error", msg,
		)
	} else {
		s.edited = art
		s.phase = PhaseEdited
		s.logger.Info("edit completed",
			"duration_ms", elapsed.Milliseconds(),
			"bytes", len(art.Data),
			"mime_type", art.MIMEType,
		)
	}
	s.mu.Unlock()

	s.emit(Event{Kind: KindEdit, Err: msg, Duration: elapsed})
}

func (s *Session) emit(ev Event) {
	if s.observe != nil {
		s.observe(ev)
	}
}

// failureMessage converts a service error into the user-facing banner text.
func failureMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "image request failed"
	}
	return err.Error()
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
