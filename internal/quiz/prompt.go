package quiz

import (
	"fmt"
	"strings"
)

const questionSystemPrompt = `You write comprehension questions for a health-education assistant. You only ever ask about what the given summary says.`

func buildQuestionPrompt(summary string, previous []string, maxPrevious int) string {
	var b strings.Builder

	b.WriteString(`Create ONE comprehension question based EXCLUSIVELY on the provided summary below.

STRICT REQUIREMENTS:
1. Create ONLY ONE question (open-ended)
2. The question must be answerable ONLY using information from the summary
3. No outside knowledge
4. Test key understanding of the summary
5. Do NOT reveal the answer
6. Do NOT repeat any previous questions

FORMAT: Output just the question text.
`)
	fmt.Fprintf(&b, "\nSUMMARY:\n%s\n", summary)
	fmt.Fprintf(&b, "\nPREVIOUS QUESTIONS:\n%s\n", buildPrevious(previous, maxPrevious))
	b.WriteString("\nQUESTION:")

	return b.String()
}

// buildPrevious numbers prior questions for the prompt, keeping the most
// recent max of them. Returns "None" if there are none.
func buildPrevious(previous []string, max int) string {
	if len(previous) == 0 {
		return "None"
	}
	if max > 0 && len(previous) > max {
		previous = previous[len(previous)-max:]
	}

	var b strings.Builder
	for i, q := range previous {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}

const gradingSystemPrompt = `You are a strict grading assistant. You must grade the user's answer using ONLY the provided SUMMARY.`

func buildGradingPrompt(summary, question, answer string) string {
	var b strings.Builder

	b.WriteString(`If the answer invents information not present in the SUMMARY, penalize it.
If the answer contradicts the SUMMARY, penalize it.
If the answer partially matches, give a middle grade.
If the answer fully and accurately reflects key points in the SUMMARY, give a high grade.

RESTRICTIONS:
- You SHOULD NOT use any knowledge outside the SUMMARY.
- Do NOT add new facts.
- Justification MUST cite only facts/phrases that appear in the SUMMARY.

ALLOWED GRADES:
A = Completely accurate based only on SUMMARY
B = Mostly accurate, minor omissions
C = Partially accurate, missing important points
D = Limited accuracy, several errors or omissions
F = Incorrect or largely not based on SUMMARY

OUTPUT FORMAT (must follow exactly, no extra lines):
Grade: <A|B|C|D|F>
Justification: <one concise sentence using only SUMMARY info>
`)
	fmt.Fprintf(&b, "\nSUMMARY (sole source of truth):\n%s\n", summary)
	fmt.Fprintf(&b, "\nQUESTION:\n%s\n", question)
	fmt.Fprintf(&b, "\nUSER ANSWER:\n%s\n", answer)
	b.WriteString("\nNow produce ONLY the required two-line format.")

	return b.String()
}
