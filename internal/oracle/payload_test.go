package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"ai-vocab-coach/pkg/apperror"
	"ai-vocab-coach/pkg/apperror/status"
)

func decodePayload(t *testing.T, raw string, out any) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		t.Fatalf("unmarshal %q: %v", raw, err)
	}
}

func wantMalformed(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, apperror.ErrOracleError) {
		t.Fatalf("err = %v, want oracle error", err)
	}
	var coded status.CodedError
	if !errors.As(err, &coded) || coded.ErrorCode() != status.OracleMalformedPayload {
		t.Fatalf("err = %v, want malformed payload code", err)
	}
}

func TestEnrichPayload_Valid(t *testing.T) {
	var p enrichPayload
	decodePayload(t, `{
		"target_term": "hola",
		"phonetic": "ˈo.la",
		"native_definition": "A greeting.",
		"examples": [
			{"text": "¡Hola!", "phonetic": "ˈo.la", "translation": "Hello!"},
			{"text": "Hola a todos.", "phonetic": "", "translation": "Hello everyone."}
		],
		"usage_note": "Informal."
	}`, &p)

	got, err := p.toEnrichment("hello")
	if err != nil {
		t.Fatalf("toEnrichment failed: %v", err)
	}
	if got.TargetTerm != "hola" || got.NativeDefinition != "A greeting." {
		t.Errorf("enrichment fields lost: %+v", got)
	}
	if len(got.Examples) != 2 {
		t.Fatalf("examples = %d, want 2", len(got.Examples))
	}
	if got.Examples[0].Translation != "Hello!" {
		t.Errorf("example 0 = %+v", got.Examples[0])
	}
}

func TestEnrichPayload_MissingTargetTerm(t *testing.T) {
	var p enrichPayload
	decodePayload(t, `{"target_term": "  ", "native_definition": "A greeting."}`, &p)
	_, err := p.toEnrichment("hello")
	wantMalformed(t, err)
}

func TestEnrichPayload_MissingNativeDefinition(t *testing.T) {
	var p enrichPayload
	decodePayload(t, `{"target_term": "hola"}`, &p)
	_, err := p.toEnrichment("hello")
	wantMalformed(t, err)
}

func TestEnrichPayload_PartialExampleRejected(t *testing.T) {
	// a missing translation on one example invalidates the whole payload
	var p enrichPayload
	decodePayload(t, `{
		"target_term": "hola",
		"native_definition": "A greeting.",
		"examples": [
			{"text": "¡Hola!", "translation": "Hello!"},
			{"text": "Hola a todos.", "translation": ""}
		]
	}`, &p)
	_, err := p.toEnrichment("hello")
	wantMalformed(t, err)
}

func TestScenariosPayload_Valid(t *testing.T) {
	var p scenariosPayload
	decodePayload(t, `{"scenarios": [
		{"title": "At the bakery", "description": "Buying bread.", "opening_line": "¡Buenos días!"},
		{"title": "Taxi ride", "description": "Giving directions.", "opening_line": "¿Adónde vamos?"},
		{"title": "Hotel check-in", "description": "Arriving late.", "opening_line": "Bienvenido."}
	]}`, &p)

	got, err := p.toDescriptors()
	if err != nil {
		t.Fatalf("toDescriptors failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("descriptors = %d, want 3", len(got))
	}
	seen := map[string]bool{}
	for i, d := range got {
		if d.ID == "" || seen[d.ID] {
			t.Errorf("descriptor %d has a missing or duplicate id", i)
		}
		seen[d.ID] = true
	}
	if got[1].OpeningLine != "¿Adónde vamos?" {
		t.Errorf("opening line lost: %+v", got[1])
	}
}

func TestScenariosPayload_WrongCount(t *testing.T) {
	for _, raw := range []string{
		`{"scenarios": []}`,
		`{"scenarios": [{"title": "A", "opening_line": "Hola."}, {"title": "B", "opening_line": "Hola."}]}`,
	} {
		var p scenariosPayload
		decodePayload(t, raw, &p)
		_, err := p.toDescriptors()
		wantMalformed(t, err)
	}
}

func TestScenariosPayload_MissingTitleOrOpeningLine(t *testing.T) {
	var p scenariosPayload
	decodePayload(t, `{"scenarios": [
		{"title": "At the bakery", "opening_line": "¡Buenos días!"},
		{"title": "", "opening_line": "¿Adónde vamos?"},
		{"title": "Hotel check-in", "opening_line": "Bienvenido."}
	]}`, &p)
	_, err := p.toDescriptors()
	wantMalformed(t, err)
}

func TestReplyPayload_EmptyRejected(t *testing.T) {
	var p replyPayload
	decodePayload(t, `{"reply": "   "}`, &p)
	_, err := p.toTurn()
	wantMalformed(t, err)
}

func TestReplyPayload_Valid(t *testing.T) {
	var p replyPayload
	decodePayload(t, `{"reply": "¡Claro que sí!"}`, &p)
	turn, err := p.toTurn()
	if err != nil {
		t.Fatalf("toTurn failed: %v", err)
	}
	if turn.Role != RoleCounterpart || turn.Text != "¡Claro que sí!" {
		t.Errorf("turn = %+v", turn)
	}
}

func TestEvaluatePayload_MissingScore(t *testing.T) {
	var p evaluatePayload
	decodePayload(t, `{"feedback": "Good effort."}`, &p)
	_, err := p.toReport()
	wantMalformed(t, err)
}

func TestEvaluatePayload_ScoreOutOfRange(t *testing.T) {
	for _, raw := range []string{
		`{"score": -1, "feedback": "x"}`,
		`{"score": 101, "feedback": "x"}`,
	} {
		var p evaluatePayload
		decodePayload(t, raw, &p)
		_, err := p.toReport()
		wantMalformed(t, err)
	}
}

func TestEvaluatePayload_BoundaryScoresAccepted(t *testing.T) {
	for _, raw := range []string{`{"score": 0}`, `{"score": 100}`} {
		var p evaluatePayload
		decodePayload(t, raw, &p)
		report, err := p.toReport()
		if err != nil {
			t.Fatalf("toReport(%s) failed: %v", raw, err)
		}
		if report.Corrections == nil {
			t.Error("corrections slice is nil")
		}
	}
}

func TestEvaluatePayload_CarriesCorrections(t *testing.T) {
	var p evaluatePayload
	decodePayload(t, `{
		"score": 72,
		"feedback": "Watch your genders.",
		"corrections": [{"original": "el mesa", "correction": "la mesa", "explanation": "mesa is feminine"}]
	}`, &p)
	report, err := p.toReport()
	if err != nil {
		t.Fatalf("toReport failed: %v", err)
	}
	if report.Score != 72 || len(report.Corrections) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if report.Corrections[0].Correction != "la mesa" {
		t.Errorf("correction lost: %+v", report.Corrections[0])
	}
}

func TestSynthesize_UnknownVoice(t *testing.T) {
	// rejected before any request is made, classified as an audio failure
	c := &Client{}
	_, err := c.Synthesize(context.Background(), "hola", Voice("robot"))
	if !errors.Is(err, apperror.ErrAudioFailure) {
		t.Fatalf("err = %v, want audio failure", err)
	}
	var coded status.CodedError
	if !errors.As(err, &coded) || coded.ErrorCode() != status.AudioUnknownVoice {
		t.Fatalf("err = %v, want unknown voice code", err)
	}
}
