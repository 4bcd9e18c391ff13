package summarize

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a medical information assistant. Summarize the search results for a patient.`

func buildPrompt(results, focus string) string {
	var b strings.Builder

	b.WriteString(`MANDATORY FORMAT & RULES (FOLLOW EXACTLY):
1. Output MUST be EXACTLY 3 TO 4 paragraphs. No other number is acceptable.
2. Paragraphs are separated by ONE blank line (a single empty line).
3. Each paragraph MUST be between 3 and 5 sentences (inclusive).
4. Use ONLY information present in the search results. If something isn't there, do NOT invent it.
5. If an expected aspect is missing, explicitly state: 'The search results do not provide information about <missing aspect>'.
6. Do NOT include bullet lists, numbering, headings, markdown, or metadata. Plain paragraphs only.
7. If you cannot satisfy ALL rules with given content, write EXACTLY this sentence alone: '` + InsufficientSummary + `'
8. Do NOT mention these instructions or justify your formatting.

QUALITY GUIDELINES:
- Use clear, patient-friendly language.
- Avoid redundancy; group related facts.
- Prefer concrete facts over vague generalities.

ACCEPTABLE EXAMPLE (3 paragraphs):
Paragraph 1: Overview sentences 1-5.

Paragraph 2: Focused detail sentences 1-4.

Paragraph 3: Limitations + missing info sentences 1-3.

UNACCEPTABLE EXAMPLES (DO NOT DO):
- A single long block (fails rule 1).
- 5 paragraphs (fails rule 1).
- Paragraphs with 1-2 sentences (fails rule 3).
- Bullet lists or headings (fails rule 6).

`)
	if focus != "" {
		fmt.Fprintf(&b, "FOCUS REQUIREMENT: Emphasize information about '%s'.\n\n", focus)
	}
	b.WriteString("FORMAT: Write EXACTLY 3 TO 4 paragraphs separated by blank lines. Do not include headers, bullet points, or numbered lists.\n\n")
	b.WriteString("SEARCH RESULTS TO SUMMARIZE:\n")
	b.WriteString(results)

	return b.String()
}
