package openai

import (
	"fmt"

	"github.com/veritell/matchbook/core"
)

const judgmentResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "is_match": {
      "type": "boolean"
    },
    "confidence": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    },
    "reasoning": {
      "type": "string"
    }
  },
  "required": ["is_match", "confidence", "reasoning"],
  "additionalProperties": false
}`

const judgmentSystemPrompt = `You are an entity resolution judge. Given two business or person names plus
lexical similarity evidence, decide whether they refer to the same real-world entity.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + judgmentResponseSchema + `

Rules:
- "is_match" is true only when both names plausibly denote the SAME organization or person.
- A brand, subsidiary, or well-known abbreviation of the other name counts as a match.
- A shared surname or a shared generic word alone does NOT make a match.
- "confidence" is your calibrated belief in the verdict, from 0 (pure guess) to 1 (certain).
- "reasoning" is one short sentence naming the decisive evidence.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example (brand vs legal name):
Input: name A: "Amazon" / name B: "Amazon.com Inc"
Output:
{"is_match": true, "confidence": 0.95, "reasoning": "Amazon is the common brand name for Amazon.com Inc."}

Example (typo):
Input: name A: "Microsft" / name B: "Microsoft Corporation"
Output:
{"is_match": true, "confidence": 0.9, "reasoning": "Single-character typo of Microsoft."}

Example (shared surname only):
Input: name A: "Johnson" / name B: "Johnson Controls"
Output:
{"is_match": false, "confidence": 0.85, "reasoning": "A bare surname does not identify the company Johnson Controls."}

Example (different entities):
Input: name A: "Delta Airlines" / name B: "Delta Dental"
Output:
{"is_match": false, "confidence": 0.97, "reasoning": "Shared word Delta but unrelated companies in different industries."}`

// buildPairPrompt renders one name pair with its lexical evidence.
func buildPairPrompt(nameA, nameB string, scores core.KernelScoreSet) string {
	return fmt.Sprintf(`name A: %q
name B: %q

Lexical evidence (each kernel scores similarity in [0,1]):
- exact: %.3f
- edit distance: %.3f
- phonetic prefix: %.3f
- token set: %.3f
- phonetic code: %.3f
- character ngram: %.3f`,
		nameA, nameB,
		scores.Exact,
		scores.EditDistance,
		scores.PhoneticPrefix,
		scores.TokenSet,
		scores.PhoneticCode,
		scores.NGram)
}
