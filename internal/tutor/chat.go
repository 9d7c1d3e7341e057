package tutor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/exercise"
	"github.com/abhisek/langbuddy/internal/llm"
	"github.com/abhisek/langbuddy/internal/profile"
	"github.com/abhisek/langbuddy/internal/prompt"
	"github.com/abhisek/langbuddy/internal/reply"
	"github.com/abhisek/langbuddy/internal/session"
	"github.com/abhisek/langbuddy/internal/store"
)

// PendingTurn is a chat turn whose user message has been recorded but
// whose reply has not arrived yet.
type PendingTurn struct {
	User    session.Message
	history []session.Message
	profile profile.Profile
}

// Turn is a completed chat turn.
type Turn struct {
	User      session.Message
	Assistant session.Message
	Result    reply.Result

	// Received reports whether the turn replaced the exercise set.
	Received bool

	// Err is the generation error, if any. The turn still completed with
	// a fallback reply.
	Err error
}

// Send runs one full chat turn. Blank text is ignored and returns nil.
// If a turn is already pending it returns ErrBusy and changes nothing.
func (t *Tutor) Send(ctx context.Context, text string) (*Turn, error) {
	p, err := t.BeginSend(ctx, text)
	if err != nil || p == nil {
		return nil, err
	}
	return t.CompleteSend(ctx, p), nil
}

// BeginSend records the user message, creating the session if needed, and
// marks the tutor pending. Every non-nil PendingTurn must be passed to
// CompleteSend.
func (t *Tutor) BeginSend(ctx context.Context, text string) (*PendingTurn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending {
		return nil, ErrBusy
	}

	if t.session == nil {
		t.session = session.New()
	}
	history := t.session.Messages
	user := session.NewMessage(text, true)
	t.session = t.session.Append(user)
	t.pending = true
	t.deps.Store.Save(ctx, store.KeySession, t.session)

	return &PendingTurn{User: user, history: history, profile: t.profile}, nil
}

// CompleteSend asks the model for a reply, appends exactly one assistant
// message, applies any recovered exercises and clears the pending flag.
func (t *Tutor) CompleteSend(ctx context.Context, p *PendingTurn) *Turn {
	defer func() {
		t.mu.Lock()
		t.pending = false
		t.mu.Unlock()
	}()

	req := t.deps.Builder.Request(prompt.Input{
		Utterance: p.User.Content,
		Profile:   p.profile,
		History:   p.history,
	})
	res, err := t.generate(llm.WithPurpose(ctx, llm.PurposeChat), req)

	text := res.Reply
	switch {
	case err != nil:
		text = FallbackReply
	case text == "" && len(res.Exercises) > 0:
		text = ExercisesOnlyReply
	case text == "":
		text = FallbackReply
	}

	log := t.log.WithFields(logrus.Fields{"outcome": res.Outcome.String(), "exercises": len(res.Exercises)})
	if err != nil {
		log.WithError(err).Warn("Chat generation failed, using fallback reply")
	} else if res.Err != nil {
		log.WithError(res.Err).Warn("Exercise payload partly or wholly unusable")
	}

	assistant := session.NewMessage(text, false)

	t.mu.Lock()
	if t.session == nil {
		// The session was cleared mid-turn; the reply starts a new one.
		t.session = session.New()
	}
	t.session = t.session.Append(assistant)
	t.deps.Store.Save(ctx, store.KeySession, t.session)
	t.mu.Unlock()

	turn := &Turn{User: p.User, Assistant: assistant, Result: res, Err: err}
	if p.profile.GenerateExercises {
		turn.Received = t.ReceiveExercises(ctx, res.Exercises)
	}
	return turn
}

// generate calls the provider and parses the reply. A panic in either is
// reported as an error.
func (t *Tutor) generate(ctx context.Context, req llm.Request) (res reply.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = reply.Result{}, fmt.Errorf("generation panicked: %v", r)
		}
	}()

	if t.deps.Provider == nil {
		return reply.Result{}, &llm.ErrProviderUnavailable{}
	}

	req.MaxTokens = t.deps.MaxTokens
	req.Temperature = t.deps.Temperature
	resp, err := t.deps.Provider.Generate(ctx, req)
	if err != nil {
		return reply.Result{}, err
	}
	if resp.Truncated() {
		t.log.WithField("max_tokens", req.MaxTokens).Warn("Reply hit the token limit")
	}
	return reply.Parse(resp.Text), nil
}

// ReceiveExercises replaces the exercise set with list and switches to the
// exercise view. An empty list changes nothing and returns false.
func (t *Tutor) ReceiveExercises(ctx context.Context, list []exercise.Exercise) bool {
	if len(list) == 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.exercises = append([]exercise.Exercise(nil), list...)
	t.surface = SurfaceExercises
	t.deps.Store.Save(ctx, store.KeyExercises, t.exercises)
	return true
}

// Exercises returns a copy of the active exercise set.
func (t *Tutor) Exercises() []exercise.Exercise {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]exercise.Exercise(nil), t.exercises...)
}

// MoreExercises asks the model for a fresh exercise set using the
// conversation so far, without adding to the conversation. When the model
// yields nothing usable the sample set is used instead. fromModel reports
// which happened.
func (t *Tutor) MoreExercises(ctx context.Context) (list []exercise.Exercise, fromModel bool, err error) {
	t.mu.Lock()
	if t.generating {
		t.mu.Unlock()
		return nil, false, ErrBusy
	}
	t.generating = true
	p := t.profile
	var history []session.Message
	if t.session != nil {
		history = t.session.Messages
	}
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.generating = false
		t.mu.Unlock()
	}()

	req := t.deps.Builder.Request(prompt.Input{
		Utterance:      prompt.MoreExercisesPrompt(p),
		Profile:        p,
		History:        history,
		ForceExercises: true,
	})
	res, genErr := t.generate(llm.WithPurpose(ctx, llm.PurposeExercises), req)

	list, fromModel = res.Exercises, true
	if genErr != nil || len(list) == 0 {
		t.log.WithFields(logrus.Fields{"outcome": res.Outcome.String()}).
			WithError(firstErr(genErr, res.Err)).
			Warn("No usable exercises generated, using samples")
		list, fromModel = exercise.Samples(), false
	}

	t.ReceiveExercises(ctx, list)
	return list, fromModel, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
