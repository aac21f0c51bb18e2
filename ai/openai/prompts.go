package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/insightd/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "insights": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {"type": "string"},
          "title": {"type": "string", "maxLength": 100},
          "description": {"type": "string", "maxLength": 500},
          "confidence": {"type": "number", "minimum": 0.0, "maximum": 1.0},
          "severity": {"type": "string"},
          "project_name": {"type": "string"},
          "assigned_to": {"type": "string"},
          "due_date": {"type": "string"},
          "financial_impact": {"type": "number"}
        },
        "required": ["type", "title", "description", "confidence", "severity"],
        "additionalProperties": false
      }
    }
  },
  "required": ["insights"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `You are an expert project manager and meeting analyst for a construction firm. Extract actionable insights from the given document.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The type field must match exactly one of: %s.
- The severity field must match exactly one of: %s.
- title is a brief descriptive title, at most 100 characters.
- description elaborates on the insight, at most 500 characters.
- confidence is a float from 0.0 to 1.0 indicating how certain you are the insight is real.
- project_name is the project the insight belongs to, only when the document names one. Otherwise "".
- assigned_to is the person responsible, only when the document names one. Otherwise "".
- due_date is an ISO date (YYYY-MM-DD), only when a deadline was stated. Otherwise "".
- financial_impact is the dollar amount at stake, 0 when no amount was mentioned.
- Include only insights that are explicitly stated or clearly implied. Do not hallucinate.
- Focus on action items, decisions made, risks identified, budget movements, and schedule changes.
- If the document yields nothing actionable, return "insights": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Mike: The steel delivery slipped two weeks. We agreed to resequence and start drywall on floors 1-3 first. Sarah will reprice the change order, due Friday 2024-09-27, roughly $45k exposure."
Output:
{
  "insights": [
    {"type":"timeline_change","title":"Steel delivery slipped two weeks","description":"Steel delivery is delayed by two weeks; the team agreed to resequence work and start drywall on floors 1-3 first.","confidence":0.95,"severity":"high","project_name":"","assigned_to":"","due_date":"","financial_impact":0},
    {"type":"action_item","title":"Reprice the change order","description":"Sarah will reprice the change order caused by the steel delay.","confidence":0.9,"severity":"medium","project_name":"","assigned_to":"Sarah","due_date":"2024-09-27","financial_impact":45000}
  ]
}`

// buildSystemPrompt creates the extraction system prompt with the type
// and severity vocabularies embedded.
func buildSystemPrompt() string {
	return fmt.Sprintf(extractionPromptTemplate,
		extractionResponseSchema,
		strings.Join(ai.InsightTypes, ", "),
		strings.Join(ai.Severities, ", "))
}

// buildUserPrompt frames the document with the context the caller
// already knows, so the model doesn't rediscover it.
func buildUserPrompt(input ai.ExtractionInput) string {
	var b strings.Builder
	b.WriteString("Document: ")
	if input.Title != "" {
		b.WriteString(input.Title)
	} else {
		b.WriteString("Untitled")
	}
	b.WriteString("\nDate: ")
	if input.Date != "" {
		b.WriteString(input.Date)
	} else {
		b.WriteString("Unknown")
	}
	if len(input.Speakers) > 0 {
		b.WriteString("\nSpeakers: ")
		b.WriteString(strings.Join(input.Speakers, ", "))
	}
	b.WriteString("\n\nContent:\n")
	b.WriteString(truncate(input.Content, maxContentLen))
	b.WriteString("\n\nExtract all actionable insights from this document.")
	return b.String()
}
