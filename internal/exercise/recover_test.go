package exercise

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

const fillInBlank = `{"type":"fill-in-blank","question":"Ich ___ Deutsch.","correctAnswer":"spreche","difficulty":"A1","topic":"verbs"}`

func TestRecover_SingleExercise(t *testing.T) {
	got, err := Recover("[" + fillInBlank + "]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(got))
	}
	ex := got[0]
	if ex.ID == "" {
		t.Error("expected a fresh ID")
	}
	want := Exercise{
		ID:            ex.ID,
		Kind:          KindFillInBlank,
		Question:      "Ich ___ Deutsch.",
		CorrectAnswer: "spreche",
		Difficulty:    "A1",
		Topic:         "verbs",
	}
	if fmt.Sprint(ex) != fmt.Sprint(want) {
		t.Errorf("got %+v, want %+v", ex, want)
	}
}

func TestRecover_SurroundingProse(t *testing.T) {
	segments := []string{
		"Here you go:\n[" + fillInBlank + "]\nGood luck!",
		"```json\n[" + fillInBlank + "]\n```",
		"Sure! ```\n[" + fillInBlank + "]\n``` Have fun.",
	}
	for i, seg := range segments {
		got, err := Recover(seg)
		if err != nil {
			t.Errorf("segment %d: unexpected error: %v", i, err)
			continue
		}
		if len(got) != 1 || got[0].CorrectAnswer != "spreche" {
			t.Errorf("segment %d: got %+v", i, got)
		}
	}
}

func TestRecover_IgnoresModelIDsAndAssignsUniqueOnes(t *testing.T) {
	seg := `[
		{"id":"1","type":"translation","question":"Translate: hello","correctAnswer":"hallo","difficulty":"A1","topic":"greetings"},
		{"id":"1","type":"translation","question":"Translate: thanks","correctAnswer":"danke","difficulty":"A1","topic":"greetings"},
		{"id":7,"type":"word-order","question":"bin / ich / müde","correctAnswer":"Ich bin müde","difficulty":"A1","topic":"word order"}
	]`
	got, err := Recover(seg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 exercises, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, ex := range got {
		if ex.ID == "1" || ex.ID == "7" {
			t.Errorf("model-supplied ID %q was kept", ex.ID)
		}
		if seen[ex.ID] {
			t.Errorf("duplicate ID %q", ex.ID)
		}
		seen[ex.ID] = true
	}
}

func TestRecover_PreservesOrderAndFields(t *testing.T) {
	seg := `[
		{"type":"multiple-choice","question":"Artikel: Haus","options":["der","die","das"],"correctAnswer":"das","explanation":"neuter","difficulty":"A1","topic":"articles"},
		` + fillInBlank + `
	]`
	got, err := Recover(seg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(got))
	}
	if got[0].Kind != KindMultipleChoice || len(got[0].Options) != 3 || got[0].Explanation != "neuter" {
		t.Errorf("first exercise mangled: %+v", got[0])
	}
	if got[1].Kind != KindFillInBlank {
		t.Errorf("order not preserved: %+v", got[1])
	}
}

func TestRecover_TrailingCommas(t *testing.T) {
	seg := `[{"type":"translation","question":"Translate: cat","correctAnswer":"Katze","difficulty":"A1","topic":"animals",},]`
	got, err := Recover(seg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].CorrectAnswer != "Katze" {
		t.Fatalf("got %+v", got)
	}
}

func TestRecover_ModelIDOfAnyType(t *testing.T) {
	for _, id := range []string{`1`, `2.5`, `null`, `true`, `{"n":1}`, `["x"]`, `"abc"`} {
		t.Run(id, func(t *testing.T) {
			seg := `[{"id":` + id + `,"type":"fill-in-blank","question":"Ich ___ Deutsch.","correctAnswer":"spreche","difficulty":"A1","topic":"verbs"}]`
			got, err := Recover(seg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("expected 1 exercise, got %d", len(got))
			}
			if got[0].ID == "" || got[0].ID == "abc" {
				t.Errorf("expected a fresh ID, got %q", got[0].ID)
			}
			if got[0].CorrectAnswer != "spreche" {
				t.Errorf("fields lost: %+v", got[0])
			}
		})
	}
}

func TestRecover_FencedNoteOutsideArray(t *testing.T) {
	seg := "Note:\n```\nremember umlauts\n```\n[" + fillInBlank + "]"
	got, err := Recover(seg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].CorrectAnswer != "spreche" {
		t.Fatalf("got %+v", got)
	}
}

func TestRecover_FencedArrayPreferred(t *testing.T) {
	seg := "Here you go [see below]:\n```json\n[" + fillInBlank + "]\n```"
	got, err := Recover(seg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(got))
	}
}

func TestRecover_TrailingCommaInsideStringKept(t *testing.T) {
	seg := `[{"type":"translation","question":"Translate: a, ]","correctAnswer":"x, }","explanation":"say \"a, ]\" aloud","difficulty":"A1","topic":"t",},]`
	got, err := Recover(seg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(got))
	}
	if got[0].Question != "Translate: a, ]" {
		t.Errorf("question altered: %q", got[0].Question)
	}
	if got[0].CorrectAnswer != "x, }" {
		t.Errorf("answer altered: %q", got[0].CorrectAnswer)
	}
	if got[0].Explanation != `say "a, ]" aloud` {
		t.Errorf("explanation altered: %q", got[0].Explanation)
	}
}

func TestStripTrailingCommas(t *testing.T) {
	tests := map[string]string{
		`[1, 2, ]`:           `[1, 2 ]`,
		"{\"a\":1,\n\t}":     "{\"a\":1\n\t}",
		`["x, ]", ]`:         `["x, ]" ]`,
		`["esc \\", ]`:       `["esc \\" ]`,
		`["q \" , ]", "b",]`: `["q \" , ]", "b"]`,
		`[1, 2]`:             `[1, 2]`,
	}
	for in, want := range tests {
		if got := stripTrailingCommas(in); got != want {
			t.Errorf("stripTrailingCommas(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestRecover_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		wantErr bool
	}{
		{"empty", "", false},
		{"whitespace", "   \n\t", false},
		{"empty array", "[]", false},
		{"truncated", `[{"type":"fill-in-blank","question":"Ich`, true},
		{"truncated after element", "[" + fillInBlank + ",", true},
		{"object not array", fillInBlank, true},
		{"plain prose", "No exercises today, sorry.", true},
		{"reversed brackets", "] oops [", true},
		{"array of strings", `["a", "b"]`, true},
		{"array of numbers", `[1, 2, 3]`, true},
		{"nested garbage", `[[[[`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []Exercise
			var err error
			func() {
				defer func() {
					if p := recover(); p != nil {
						t.Fatalf("Recover panicked: %v", p)
					}
				}()
				got, err = Recover(tt.segment)
			}()
			if len(got) != 0 {
				t.Errorf("expected no exercises, got %d", len(got))
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecover_DropsInvalidElementsIndividually(t *testing.T) {
	seg := `[
		` + fillInBlank + `,
		{"type":"multiple-choice","question":"Artikel: Hund","options":["die","das"],"correctAnswer":"der","difficulty":"A1","topic":"articles"},
		{"type":"essay","question":"Write about your day","correctAnswer":"-","difficulty":"B2","topic":"writing"},
		{"type":"translation","question":"","correctAnswer":"Hallo","difficulty":"A1","topic":"greetings"},
		{"type":"multiple-choice","question":"Artikel: Katze","correctAnswer":"die","difficulty":"A1","topic":"articles"},
		{"type":"translation","question":"Translate: dog","correctAnswer":"Hund","difficulty":"A1","topic":"animals"}
	]`
	got, err := Recover(seg)
	if len(got) != 2 {
		t.Fatalf("expected 2 valid exercises, got %d: %+v", len(got), got)
	}
	if got[0].CorrectAnswer != "spreche" || got[1].CorrectAnswer != "Hund" {
		t.Errorf("unexpected survivors: %+v", got)
	}
	if err == nil {
		t.Fatal("expected joined validation error")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError in %v", err)
	}
	if got := strings.Count(err.Error(), "exercise "); got != 4 {
		t.Errorf("expected 4 element errors, got %d: %v", got, err)
	}
}

func TestRecover_CustomIDs(t *testing.T) {
	n := 0
	r := NewRecoverer()
	r.NewID = func() string { n++; return fmt.Sprintf("ex-%d", n) }

	got, err := r.Recover("[" + fillInBlank + "," + fillInBlank + "]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ID != "ex-1" || got[1].ID != "ex-2" {
		t.Errorf("unexpected IDs: %q, %q", got[0].ID, got[1].ID)
	}
}

func TestExtractArray(t *testing.T) {
	items, err := ExtractArray(`Sentences: [{"a":1}, {"b":2}] done`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if _, err := ExtractArray("nothing here"); !errors.Is(err, ErrNoArray) {
		t.Errorf("expected ErrNoArray, got %v", err)
	}
}
