package store

import (
	"context"
	"encoding/json"
	"io"
	"reflect"

	"github.com/sirupsen/logrus"
)

// Logical keys for the persisted learner state.
const (
	KeyProfile    = "language-buddy-user"
	KeySession    = "language-buddy-current-session"
	KeyExercises  = "language-buddy-exercises"
	KeyVocabulary = "language-buddy-vocabulary"
)

// Keys lists every logical key, in the order they are loaded.
var Keys = []string{KeyProfile, KeySession, KeyExercises, KeyVocabulary}

const probeKey = "__language-buddy-probe__"

// Persistence saves and loads JSON values on top of a KV. It never returns
// errors: failures are logged and degrade to no-op on save and absent on
// load. Times round-trip as RFC 3339 strings.
//
// A Persistence with a nil KV behaves as an unavailable store.
type Persistence struct {
	kv  KV
	log logrus.FieldLogger
}

// NewPersistence wraps kv. A nil log discards diagnostics.
func NewPersistence(kv KV, log logrus.FieldLogger) *Persistence {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Persistence{kv: kv, log: log.WithField("component", "persistence")}
}

// Save serializes value and stores it under key.
func (p *Persistence) Save(ctx context.Context, key string, value any) {
	if p == nil || p.kv == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Cannot serialize value")
		return
	}
	if err := p.kv.Put(ctx, key, data); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Cannot save value")
	}
}

// Load decodes the value stored under key into dst and reports whether it
// did. A missing key, an unreachable store and a corrupt value all report
// false; dst is left untouched unless decoding succeeds.
func (p *Persistence) Load(ctx context.Context, key string, dst any) bool {
	if p == nil || p.kv == nil {
		return false
	}
	data, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Cannot load value")
		return false
	}
	if !ok {
		return false
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		p.log.WithField("key", key).Warn("Load target must be a non-nil pointer")
		return false
	}
	fresh := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, fresh.Interface()); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Stored value is corrupt")
		return false
	}
	rv.Elem().Set(fresh.Elem())
	return true
}

// Remove deletes key.
func (p *Persistence) Remove(ctx context.Context, key string) {
	if p == nil || p.kv == nil {
		return
	}
	if err := p.kv.Delete(ctx, key); err != nil {
		p.log.WithError(err).WithField("key", key).Warn("Cannot remove value")
	}
}

// Available probes the backend with a write and delete.
func (p *Persistence) Available(ctx context.Context) bool {
	if p == nil || p.kv == nil {
		return false
	}
	if err := p.kv.Put(ctx, probeKey, []byte(probeKey)); err != nil {
		return false
	}
	return p.kv.Delete(ctx, probeKey) == nil
}
