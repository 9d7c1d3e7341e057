package profile

import (
	"encoding/json"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()
	if p.Name != "Language Learner" || p.Level != LevelA1 || p.TargetLanguage != "German" ||
		p.NativeLanguage != "English" || p.ResponseMode != ModeBilingual || !p.GenerateExercises {
		t.Errorf("unexpected default profile: %+v", p)
	}
}

func TestWithDefaults(t *testing.T) {
	p := Profile{Level: "b2", ResponseMode: "german-only"}.WithDefaults()
	if p.Level != LevelB2 {
		t.Errorf("level = %q, want B2", p.Level)
	}
	if p.ResponseMode != ModeTargetOnly {
		t.Errorf("mode = %q, want target-only", p.ResponseMode)
	}
	if p.Name != "Language Learner" || p.TargetLanguage != "German" || p.NativeLanguage != "English" {
		t.Errorf("blank fields not defaulted: %+v", p)
	}
	if p.GenerateExercises {
		t.Error("exercise toggle must not be forced on")
	}

	p = Profile{Level: "Z9", ResponseMode: "klingon"}.WithDefaults()
	if p.Level != LevelA1 || p.ResponseMode != ModeBilingual {
		t.Errorf("invalid values not replaced: %+v", p)
	}
}

func TestWithDefaults_KeepsValidFields(t *testing.T) {
	in := Profile{ID: "x", Name: "Ana", Level: LevelC1, TargetLanguage: "Spanish", NativeLanguage: "Portuguese", ResponseMode: ModeTargetOnly}
	if out := in.WithDefaults(); out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestProfile_JSONNames(t *testing.T) {
	b, err := json.Marshal(Default())
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"name", "level", "targetLanguage", "nativeLanguage", "responseLanguage", "generateExercises"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing JSON key %q", key)
		}
	}
}

func TestNextLevel(t *testing.T) {
	if NextLevel(LevelA1) != LevelA2 || NextLevel(LevelC2) != LevelA1 || NextLevel("??") != LevelA1 {
		t.Error("unexpected level cycle")
	}
}

func TestNextMode(t *testing.T) {
	if NextMode(ModeBilingual) != ModeTargetOnly || NextMode(ModeTargetOnly) != ModeBilingual {
		t.Error("unexpected mode toggle")
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel(" c1 "); !ok || l != LevelC1 {
		t.Errorf("ParseLevel = %q, %v", l, ok)
	}
	if _, ok := ParseLevel("D1"); ok {
		t.Error("D1 is not a level")
	}
}
