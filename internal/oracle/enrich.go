package oracle

import (
	"context"
	"fmt"
	"strings"
)

type enrichPayload struct {
	TargetTerm       string `json:"target_term"`
	Phonetic         string `json:"phonetic"`
	NativeDefinition string `json:"native_definition"`
	Examples         []struct {
		Text        string `json:"text"`
		Phonetic    string `json:"phonetic"`
		Translation string `json:"translation"`
	} `json:"examples"`
	UsageNote string `json:"usage_note"`
}

// Enrich asks the model for the full text enrichment of a term. The payload
// is validated before anything is returned; a bad shape yields an oracle
// error with no partial Enrichment.
func (c *Client) Enrich(ctx context.Context, term, sourceLang, targetLang string) (Enrichment, error) {
	var b strings.Builder
	b.WriteString("You are a bilingual dictionary for a language learner. ")
	fmt.Fprintf(&b, "The learner speaks %s and is studying %s. ", sourceLang, targetLang)
	b.WriteString("Answer with a single JSON object, no prose, with keys: ")
	b.WriteString(`"target_term" (the translation), "phonetic" (IPA), `)
	b.WriteString(`"native_definition" (a one-sentence definition in the learner's language), `)
	b.WriteString(`"examples" (exactly 2 objects with "text" in the target language, "phonetic" IPA, "translation" in the learner's language), `)
	b.WriteString(`"usage_note" (register, pitfalls, common collocations).`)

	userMsg := fmt.Sprintf("Term: %s", sanitize(term))

	var out enrichPayload
	if err := c.chatJSON(ctx, b.String(), userMsg, &out); err != nil {
		return Enrichment{}, err
	}
	return out.toEnrichment(term)
}

func (p enrichPayload) toEnrichment(term string) (Enrichment, error) {
	if strings.TrimSpace(p.TargetTerm) == "" {
		return Enrichment{}, malformed("enrich: missing target_term for %q", term)
	}
	if strings.TrimSpace(p.NativeDefinition) == "" {
		return Enrichment{}, malformed("enrich: missing native_definition for %q", term)
	}
	examples := make([]Example, 0, len(p.Examples))
	for i, ex := range p.Examples {
		// all-or-nothing: a partially filled example invalidates the payload
		if strings.TrimSpace(ex.Text) == "" || strings.TrimSpace(ex.Translation) == "" {
			return Enrichment{}, malformed("enrich: partially populated example %d for %q", i, term)
		}
		examples = append(examples, Example{
			Text:        ex.Text,
			Phonetic:    ex.Phonetic,
			Translation: ex.Translation,
		})
	}

	return Enrichment{
		TargetTerm:       p.TargetTerm,
		Phonetic:         p.Phonetic,
		NativeDefinition: p.NativeDefinition,
		Examples:         examples,
		UsageNote:        p.UsageNote,
	}, nil
}
