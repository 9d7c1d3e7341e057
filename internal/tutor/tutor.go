// Package tutor owns the learner's conversation, exercise set and
// vocabulary, and advances them in response to user actions and model
// replies.
//
// Every pipeline-facing operation completes with usable content: model
// failures turn into fallback text, sample exercises or placeholder
// translations, and never leave the pending flag set.
package tutor

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/exercise"
	"github.com/abhisek/langbuddy/internal/llm"
	"github.com/abhisek/langbuddy/internal/profile"
	"github.com/abhisek/langbuddy/internal/prompt"
	"github.com/abhisek/langbuddy/internal/session"
	"github.com/abhisek/langbuddy/internal/store"
	"github.com/abhisek/langbuddy/internal/vocab"
)

// FallbackReply is the assistant message used when the model cannot be
// reached.
const FallbackReply = "I'm having trouble connecting to my brain right now. Let's try again later!"

// ExercisesOnlyReply stands in for an empty reply that carried exercises.
const ExercisesOnlyReply = "Here are some exercises for you!"

var (
	// ErrBusy is returned when an operation of the same kind is in flight.
	ErrBusy = errors.New("a request is already in progress")

	// ErrWordNotFound is returned for an unknown vocabulary word ID.
	ErrWordNotFound = errors.New("vocabulary word not found")

	// ErrEmptyWord is returned when adding a blank vocabulary word.
	ErrEmptyWord = errors.New("vocabulary word is empty")
)

// Surface is the view the learner is looking at.
type Surface string

const (
	SurfaceChat       Surface = "chat"
	SurfaceExercises  Surface = "exercises"
	SurfaceVocabulary Surface = "vocabulary"
	SurfaceProfile    Surface = "profile"
)

// Surfaces lists the views in tab order.
var Surfaces = []Surface{SurfaceChat, SurfaceExercises, SurfaceVocabulary, SurfaceProfile}

// Translator translates a vocabulary word. It must not fail.
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, vocab.Source)
}

// ExampleSource produces three tiered example sentences for a word.
type ExampleSource interface {
	Generate(ctx context.Context, w vocab.Word) ([]vocab.ExampleSentence, bool)
}

// Deps are the collaborators of a Tutor. Only Provider is required for
// chat; nil Store disables persistence.
type Deps struct {
	Provider   llm.Provider
	Store      *store.Persistence
	Translator Translator
	Examples   ExampleSource
	Builder    prompt.Builder
	Log        logrus.FieldLogger

	MaxTokens   int
	Temperature float64

	// Now defaults to time.Now.
	Now func() time.Time
}

// Tutor is the client-side state machine. It is safe for concurrent use;
// pipeline calls run without holding the lock.
type Tutor struct {
	deps Deps
	log  logrus.FieldLogger

	mu         sync.Mutex
	profile    profile.Profile
	session    *session.Session
	exercises  []exercise.Exercise
	vocabulary []vocab.Word
	pending    bool
	generating bool
	surface    Surface
}

// New returns a Tutor with the default profile and no session. Call Load
// to restore persisted state.
func New(deps Deps) *Tutor {
	if deps.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		deps.Log = l
	}
	if deps.MaxTokens <= 0 {
		deps.MaxTokens = 800
	}
	if deps.Temperature == 0 {
		deps.Temperature = 0.8
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Translator == nil {
		deps.Translator = placeholderTranslator{}
	}
	if deps.Examples == nil {
		deps.Examples = vocab.NewExampleGenerator(nil, nil)
	}
	return &Tutor{
		deps:    deps,
		log:     deps.Log.WithField("component", "tutor"),
		profile: profile.Default(),
		surface: SurfaceChat,
	}
}

// Load restores state from the store. Missing or unreadable entries keep
// their defaults.
func (t *Tutor) Load(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var p profile.Profile
	if t.deps.Store.Load(ctx, store.KeyProfile, &p) {
		t.profile = p.WithDefaults()
	} else {
		t.profile = profile.Default()
		t.deps.Store.Save(ctx, store.KeyProfile, t.profile)
	}

	var s session.Session
	if t.deps.Store.Load(ctx, store.KeySession, &s) && s.ID != "" {
		t.session = &s
	}

	var exs []exercise.Exercise
	if t.deps.Store.Load(ctx, store.KeyExercises, &exs) {
		t.exercises = exs
	}

	var words []vocab.Word
	if t.deps.Store.Load(ctx, store.KeyVocabulary, &words) {
		t.vocabulary = words
	}

	t.log.WithFields(logrus.Fields{
		"messages":   t.session.Len(),
		"exercises":  len(t.exercises),
		"vocabulary": len(t.vocabulary),
	}).Debug("Loaded state")
}

// State is a read-only copy of the tutor for rendering.
type State struct {
	Profile    profile.Profile
	Session    *session.Session
	Exercises  []exercise.Exercise
	Vocabulary []vocab.Word
	Pending    bool
	Generating bool
	Surface    Surface
}

// Snapshot returns a copy of the current state.
func (t *Tutor) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	st := State{
		Profile:    t.profile,
		Exercises:  append([]exercise.Exercise(nil), t.exercises...),
		Vocabulary: append([]vocab.Word(nil), t.vocabulary...),
		Pending:    t.pending,
		Generating: t.generating,
		Surface:    t.surface,
	}
	if t.session != nil {
		st.Session = t.session.Append()
	}
	return st
}

// Pending reports whether a chat turn is in flight.
func (t *Tutor) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Surface returns the active view.
func (t *Tutor) Surface() Surface {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.surface
}

// SetSurface switches the active view.
func (t *Tutor) SetSurface(s Surface) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.surface = s
}

// Profile returns the current profile.
func (t *Tutor) Profile() profile.Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile
}

// UpdateProfile replaces the profile, defaulting blank fields, and saves it.
func (t *Tutor) UpdateProfile(ctx context.Context, p profile.Profile) profile.Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile = p.WithDefaults()
	t.deps.Store.Save(ctx, store.KeyProfile, t.profile)
	return t.profile
}

// ClearSession drops the current conversation.
func (t *Tutor) ClearSession(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.session = nil
	t.deps.Store.Remove(ctx, store.KeySession)
}

// ClearAll resets every piece of state to its default and removes it from
// the store.
func (t *Tutor) ClearAll(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile = profile.Default()
	t.session = nil
	t.exercises = nil
	t.vocabulary = nil
	t.surface = SurfaceChat
	for _, k := range store.Keys {
		t.deps.Store.Remove(ctx, k)
	}
}

func (t *Tutor) now() time.Time {
	return t.deps.Now()
}

// Now returns the tutor's clock reading.
func (t *Tutor) Now() time.Time {
	return t.now()
}

type placeholderTranslator struct{}

func (placeholderTranslator) Translate(_ context.Context, text, _, _ string) (string, vocab.Source) {
	return vocab.Placeholder(text), vocab.SourcePlaceholder
}
