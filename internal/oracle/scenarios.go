package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const scenarioBatchSize = 3

type scenariosPayload struct {
	Scenarios []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OpeningLine string `json:"opening_line"`
	} `json:"scenarios"`
}

// GenerateScenarios returns exactly three roleplay premises for the language
// pair. Descriptor ids are minted here; the premises themselves are ephemeral.
func (c *Client) GenerateScenarios(ctx context.Context, targetLang, sourceLang string) ([]ScenarioDescriptor, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You design short roleplay scenarios for a %s speaker practicing %s. ", sourceLang, targetLang)
	fmt.Fprintf(&b, "Answer with a single JSON object: {\"scenarios\": [...]} containing exactly %d scenarios. ", scenarioBatchSize)
	fmt.Fprintf(&b, "Each scenario has \"title\" and \"description\" in %s, and \"opening_line\": the first thing the counterpart says, in %s.", sourceLang, targetLang)

	userMsg := "Generate a fresh batch of everyday scenarios (shops, travel, small talk, appointments)."

	var out scenariosPayload
	if err := c.chatJSON(ctx, b.String(), userMsg, &out); err != nil {
		return nil, err
	}
	return out.toDescriptors()
}

func (p scenariosPayload) toDescriptors() ([]ScenarioDescriptor, error) {
	if len(p.Scenarios) != scenarioBatchSize {
		return nil, malformed("scenarios: expected %d, got %d", scenarioBatchSize, len(p.Scenarios))
	}
	descriptors := make([]ScenarioDescriptor, 0, scenarioBatchSize)
	for i, s := range p.Scenarios {
		if strings.TrimSpace(s.Title) == "" || strings.TrimSpace(s.OpeningLine) == "" {
			return nil, malformed("scenarios: scenario %d missing title or opening line", i)
		}
		descriptors = append(descriptors, ScenarioDescriptor{
			ID:          uuid.NewString(),
			Title:       s.Title,
			Description: s.Description,
			OpeningLine: s.OpeningLine,
		})
	}
	return descriptors, nil
}
