package quiz

import "strings"

// labels are stripped from the front of a question, in this order.
var labels = []string{"question:", "q:", "q1:"}

// ExtractQuestion reduces free-form generator output to a single question.
//
// The first line containing "?" is the question; any later "?" lines are
// returned in discarded. Without any "?" the first non-empty line is used.
// Leading labels are removed and a question mark is appended when missing.
// Only empty input yields ""; a line that is nothing but a label becomes "?".
func ExtractQuestion(raw string) (question string, discarded []string) {
	lines := nonEmptyLines(raw)
	if len(lines) == 0 {
		return "", nil
	}

	for _, ln := range lines {
		if !strings.Contains(ln, "?") {
			continue
		}
		if question == "" {
			question = ln
		} else {
			discarded = append(discarded, ln)
		}
	}
	if question == "" {
		question = lines[0]
	}

	for _, label := range labels {
		if strings.HasPrefix(strings.ToLower(question), label) {
			question = strings.TrimSpace(question[len(label):])
		}
	}

	if !strings.HasSuffix(question, "?") {
		question = strings.TrimRight(question, ".") + "?"
	}
	return question, discarded
}
