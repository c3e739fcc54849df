package oracle

import (
	"context"
	"fmt"
)

// Role attributes a chat turn to one side of the roleplay.
type Role string

const (
	RoleLearner     Role = "learner"
	RoleCounterpart Role = "counterpart"
)

// ChatTurn is one utterance in a roleplay conversation.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Example is one usage example. All three fields come from a single Enrich
// call; an example is never partially populated.
type Example struct {
	Text        string `json:"text"`
	Phonetic    string `json:"phonetic"`
	Translation string `json:"translation"`
}

// Enrichment is the text half of an entry lookup.
type Enrichment struct {
	TargetTerm       string    `json:"target_term"`
	Phonetic         string    `json:"phonetic"`
	NativeDefinition string    `json:"native_definition"`
	Examples         []Example `json:"examples"`
	UsageNote        string    `json:"usage_note"`
}

// ScenarioDescriptor is a generated roleplay premise. Ephemeral: regenerated
// per language pair, never persisted.
type ScenarioDescriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OpeningLine string `json:"opening_line"`
}

// Correction is one item of post-session feedback.
type Correction struct {
	Original    string `json:"original"`
	Correction  string `json:"correction"`
	Explanation string `json:"explanation"`
}

// Report is the terminal evaluation of a roleplay session.
type Report struct {
	Score       int          `json:"score"`
	Feedback    string       `json:"feedback"`
	Corrections []Correction `json:"corrections"`
}

// GeneratedImage carries raw mnemonic-image bytes and their mime type.
type GeneratedImage struct {
	Data []byte
	Mime string
}

// Voice is one of the fixed set of synthesis voices.
type Voice string

const (
	VoiceAlloy   Voice = "alloy"
	VoiceEcho    Voice = "echo"
	VoiceFable   Voice = "fable"
	VoiceOnyx    Voice = "onyx"
	VoiceNova    Voice = "nova"
	VoiceShimmer Voice = "shimmer"
)

var knownVoices = map[Voice]bool{
	VoiceAlloy:   true,
	VoiceEcho:    true,
	VoiceFable:   true,
	VoiceOnyx:    true,
	VoiceNova:    true,
	VoiceShimmer: true,
}

// ParseVoice validates a voice name against the fixed set.
func ParseVoice(s string) (Voice, error) {
	v := Voice(s)
	if !knownVoices[v] {
		return "", fmt.Errorf("unknown voice %q", s)
	}
	return v, nil
}

// Oracle is the contract with the external generative service. All calls are
// request/response, latency-variable and fallible; implementations localize
// malformed payloads into apperror's oracle kind rather than returning
// partially populated values.
type Oracle interface {
	// Enrich produces the full text enrichment for a term.
	Enrich(ctx context.Context, term, sourceLang, targetLang string) (Enrichment, error)

	// Synthesize returns base64-encoded PCM16LE mono speech at the pipeline
	// sample rate.
	Synthesize(ctx context.Context, text string, voice Voice) (string, error)

	// GenerateScenarios returns exactly three roleplay premises.
	GenerateScenarios(ctx context.Context, targetLang, sourceLang string) ([]ScenarioDescriptor, error)

	// ScenarioReply produces the single counterpart reply to the full history.
	ScenarioReply(ctx context.Context, scenario ScenarioDescriptor, history []ChatTurn, targetLang string) (ChatTurn, error)

	// EvaluateSession grades a frozen history.
	EvaluateSession(ctx context.Context, history []ChatTurn, sourceLang, targetLang string) (Report, error)

	// GenerateImage returns a mnemonic image for the term, or (nil, nil) when
	// the service declines without error.
	GenerateImage(ctx context.Context, term string) (*GeneratedImage, error)
}
