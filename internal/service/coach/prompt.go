package coach

import (
	"encoding/json"
	"fmt"

	"github.com/prismcrm/prism-backend/internal/domain"
)

// pipelineContext serializes the deals into the coach's context payload:
// a JSON array of simplified summaries, deterministic for a given deal state.
func pipelineContext(deals []domain.Deal) string {
	briefs := make([]domain.DealBrief, len(deals))
	for i := range deals {
		briefs[i] = domain.BriefFromDeal(&deals[i])
	}

	data, err := json.MarshalIndent(briefs, "", "  ")
	if err != nil {
		// DealBrief contains only marshalable fields; this cannot happen.
		return "[]"
	}
	return string(data)
}

// systemPrompt builds the coach persona plus the current pipeline data.
func systemPrompt(deals []domain.Deal) string {
	return fmt.Sprintf(`You are an elite Sales Coach. You are sharp, strategic, aggressive but helpful, and focused purely on revenue and deal velocity.

You have access to the user's current CRM pipeline data below.
ALWAYS reference specific deals from this data when answering, if relevant.

Your goals:
1. Identify stalled deals (old last contact date).
2. Suggest specific, tactical next steps (e.g., "Send an email to Alice at Acme asking about X").
3. Roleplay negotiation or objection handling if asked.
4. Be concise. Do not write long paragraphs. Use bullet points.

CURRENT PIPELINE DATA:
%s`, pipelineContext(deals))
}
