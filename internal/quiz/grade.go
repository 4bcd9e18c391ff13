package quiz

import (
	"fmt"
	"strings"
)

// Grade is a letter grade on the A-F scale. The zero value means "not graded".
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades lists the scale from best to worst.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// Valid reports whether g is one of the five letters.
func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD, GradeF:
		return true
	}
	return false
}

// DefaultJustification is used when the grader gave no usable justification.
const DefaultJustification = "Answer lacks sufficient alignment with the provided summary."

// MaxJustificationLen bounds the justification, in characters.
const MaxJustificationLen = 280

// Result is a grade with its one-sentence justification.
type Result struct {
	Grade         Grade
	Justification string
}

// String renders the two-line feedback shown to the user.
func (r Result) String() string {
	return fmt.Sprintf("Grade: %s\nJustification: %s", r.Grade, r.Justification)
}

// ExtractGrade pulls a grade and justification out of free-form grader output.
//
// The first "Grade:" line whose value starts with a valid letter wins, and the
// first "Justification:" line supplies the text. Without a grade line, the
// first of A, B, C, D, F found as a space-delimited token anywhere in raw is
// used; failing that the grade is F. It never fails.
func ExtractGrade(raw string) Result {
	var grade Grade
	var justification string
	var haveJustification bool

	for _, line := range nonEmptyLines(raw) {
		low := strings.ToLower(line)
		switch {
		case strings.HasPrefix(low, "grade:") && grade == "":
			value := strings.ToUpper(strings.TrimSpace(line[len("grade:"):]))
			if value != "" && Grade(value[:1]).Valid() {
				grade = Grade(value[:1])
			}
		case strings.HasPrefix(low, "justification:") && !haveJustification:
			justification = strings.TrimSpace(line[len("justification:"):])
			haveJustification = true
		}
	}

	if grade == "" {
		padded := " " + strings.TrimSpace(raw) + " "
		for _, g := range Grades {
			if strings.Contains(padded, " "+string(g)+" ") {
				grade = g
				break
			}
		}
	}
	if grade == "" {
		grade = GradeF
	}
	if justification == "" {
		justification = DefaultJustification
	}

	return Result{Grade: grade, Justification: truncateRunes(justification, MaxJustificationLen)}
}

// truncateRunes cuts s to max characters, ending in "..." when cut.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// nonEmptyLines splits raw into trimmed, non-empty lines.
func nonEmptyLines(raw string) []string {
	var out []string
	for _, ln := range strings.Split(raw, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
