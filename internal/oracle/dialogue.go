package oracle

import (
	"context"
	"fmt"
	"strings"
)

type replyPayload struct {
	Reply string `json:"reply"`
}

// ScenarioReply produces the single counterpart reply to the learner's latest
// submission. The full ordered history is sent every time; the model sees the
// whole conversation, not a window.
func (c *Client) ScenarioReply(ctx context.Context, scenario ScenarioDescriptor, history []ChatTurn, targetLang string) (ChatTurn, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You play the counterpart in a roleplay: %s. %s ", scenario.Title, scenario.Description)
	fmt.Fprintf(&b, "Stay in character and answer in %s, 1-3 sentences. ", targetLang)
	b.WriteString(`Answer with a single JSON object: {"reply": "..."}.`)

	userMsg := fmt.Sprintf("Conversation so far, in order:\n%s\nRespond to the learner's last turn.", historyJSON(history))

	var out replyPayload
	if err := c.chatJSON(ctx, b.String(), userMsg, &out); err != nil {
		return ChatTurn{}, err
	}
	return out.toTurn()
}

func (p replyPayload) toTurn() (ChatTurn, error) {
	if strings.TrimSpace(p.Reply) == "" {
		return ChatTurn{}, malformed("reply: empty counterpart turn")
	}
	return ChatTurn{Role: RoleCounterpart, Text: p.Reply}, nil
}

type evaluatePayload struct {
	Score       *int   `json:"score"`
	Feedback    string `json:"feedback"`
	Corrections []struct {
		Original    string `json:"original"`
		Correction  string `json:"correction"`
		Explanation string `json:"explanation"`
	} `json:"corrections"`
}

// EvaluateSession grades a frozen history. The report always carries a
// corrections slice, possibly empty, never nil.
func (c *Client) EvaluateSession(ctx context.Context, history []ChatTurn, sourceLang, targetLang string) (Report, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You grade a %s learner's half of a roleplay conversation. The learner's native language is %s. ", targetLang, sourceLang)
	b.WriteString("Answer with a single JSON object: ")
	fmt.Fprintf(&b, `{"score": 0-100, "feedback": "overall feedback in %s", `, sourceLang)
	b.WriteString(`"corrections": [up to 3 objects with "original", "correction", "explanation"]}.`)

	userMsg := fmt.Sprintf("Full conversation, in order:\n%s", historyJSON(history))

	var out evaluatePayload
	if err := c.chatJSON(ctx, b.String(), userMsg, &out); err != nil {
		return Report{}, err
	}
	return out.toReport()
}

func (p evaluatePayload) toReport() (Report, error) {
	if p.Score == nil {
		return Report{}, malformed("evaluate: missing score")
	}
	score := *p.Score
	if score < 0 || score > 100 {
		return Report{}, malformed("evaluate: score %d out of range", score)
	}

	corrections := make([]Correction, 0, len(p.Corrections))
	for _, corr := range p.Corrections {
		corrections = append(corrections, Correction{
			Original:    corr.Original,
			Correction:  corr.Correction,
			Explanation: corr.Explanation,
		})
	}
	return Report{
		Score:       score,
		Feedback:    p.Feedback,
		Corrections: corrections,
	}, nil
}
