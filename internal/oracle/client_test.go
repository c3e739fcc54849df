package oracle

import (
	"encoding/json"
	"testing"
)

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		`{"a":1}`:                          `{"a":1}`,
		"```json\n{\"a\":1}\n```":          `{"a":1}`,
		"```\n{\"a\":1}\n```":              `{"a":1}`,
		"  \n{\"a\":1}  ": `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripFences(in); got != want {
			t.Errorf("stripFences(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseVoice(t *testing.T) {
	for _, name := range []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"} {
		if _, err := ParseVoice(name); err != nil {
			t.Errorf("ParseVoice(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseVoice("robot"); err == nil {
		t.Error("expected error for unknown voice")
	}
	if _, err := ParseVoice(""); err == nil {
		t.Error("expected error for empty voice")
	}
}

func TestHistoryJSON_PreservesOrder(t *testing.T) {
	history := []ChatTurn{
		{Role: RoleCounterpart, Text: "¡Buenos días!"},
		{Role: RoleLearner, Text: "Hola, quisiera un café."},
		{Role: RoleCounterpart, Text: "¿Algo más?"},
	}
	var decoded []ChatTurn
	if err := json.Unmarshal([]byte(historyJSON(history)), &decoded); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if len(decoded) != len(history) {
		t.Fatalf("turns = %d, want %d", len(decoded), len(history))
	}
	for i := range history {
		if decoded[i] != history[i] {
			t.Errorf("turn %d changed: %+v", i, decoded[i])
		}
	}
}
