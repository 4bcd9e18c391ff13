package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/healthaibot/healthbot/internal/console"
	"github.com/healthaibot/healthbot/internal/quiz"
	"github.com/healthaibot/healthbot/internal/search"
)

const searchTool = "tavily_search_tool"

func (s *Sequencer) acquireTopic(ctx context.Context, st State) (State, error) {
	input, err := s.Console.Prompt(ctx, PromptTopic)
	if err != nil {
		return st, err
	}
	st.Topic = strings.TrimSpace(input)
	st.TopicsStarted++
	s.Console.Println(fmt.Sprintf(MsgTopicChosen, st.Topic))

	now := s.Now()
	st = st.record(now, RoleUser, ActionTopicSelection, fmt.Sprintf("I want to learn about %s.", st.Topic), nil)
	st = st.record(now, RoleSystem, ActionToolCall, "You are a helpful medical information assistant.", nil)
	st = st.record(now, RoleAssistant, ActionToolCall,
		fmt.Sprintf("Initiating search for %s using %s.", st.Topic, searchTool),
		map[string]string{"tool": searchTool, "call_id": fmt.Sprintf("call_tavily_%d", st.TopicsStarted), "topic": st.Topic})
	return st, nil
}

func (s *Sequencer) acquireFocus(ctx context.Context, st State) (State, error) {
	input, err := s.Console.Prompt(ctx, PromptFocus)
	if err != nil {
		return st, err
	}
	st.Focus = strings.TrimSpace(input)

	content := "Focus selection: No specific focus"
	if st.Focus != "" {
		content = "Focus selection: " + st.Focus
	}
	return st.record(s.Now(), RoleUser, ActionFocusSelection, content, nil), nil
}

func (s *Sequencer) retrieve(ctx context.Context, st State) State {
	st.RetrievedText = search.Retrieve(ctx, s.Searcher, st.Topic)

	if search.IsSentinel(st.RetrievedText) {
		s.Logger.Warn("search failed", "topic", st.Topic, "result", st.RetrievedText)
		if search.IsMissingKeySentinel(st.RetrievedText) {
			s.Console.Hint(search.MissingKeyHint)
		}
		return st.record(s.Now(), RoleAssistant, ActionSearchComplete, st.RetrievedText, map[string]string{"tool": searchTool})
	}
	return st.record(s.Now(), RoleAssistant, ActionSearchComplete,
		fmt.Sprintf("Retrieved %d characters about %s", len(st.RetrievedText), st.Topic),
		map[string]string{"tool": searchTool})
}

func (s *Sequencer) summarize(ctx context.Context, st State) State {
	focus := st.Focus
	if focus == "" {
		focus = "None"
	}
	st = st.record(s.Now(), RoleUser, ActionSummarize,
		"Requesting summary generation for topic: "+st.Topic, map[string]string{"focus": focus})

	sum, err := s.Summarizer.Summarize(ctx, st.Topic, st.Focus, st.RetrievedText)
	if err != nil {
		s.Logger.Warn("summary failed", "topic", st.Topic, "error", err)
	}
	st.Summary = sum.Text

	return st.record(s.Now(), RoleAssistant, ActionSummarizeComplete,
		fmt.Sprintf("Generated summary for %s (%d characters)", st.Topic, len(st.Summary)),
		map[string]string{"summary_length": strconv.Itoa(len(st.Summary))})
}

func (s *Sequencer) presentSummary(st State) State {
	s.Console.Heading(MsgSummaryHeading)
	s.Console.Block(st.Summary)
	return st
}

func (s *Sequencer) comprehensionGate(ctx context.Context, st State) (State, error) {
	s.Console.Println("")
	_, err := s.Console.Prompt(ctx, PromptGate)
	return st, err
}

func (s *Sequencer) createQuiz(ctx context.Context, st State) State {
	st = st.record(s.Now(), RoleUser, ActionCreateQuiz, "Requesting quiz question for "+st.Topic,
		map[string]string{"previous_questions_count": strconv.Itoa(len(st.PreviousQuestions))})

	q, err := s.Generator.Create(ctx, st.Summary, st.PreviousQuestions)
	if err != nil {
		s.Logger.Warn("quiz generation failed, using fallback question", "topic", st.Topic, "error", err)
	}
	for _, d := range q.Discarded {
		st = st.record(s.Now(), RoleAssistant, ActionQuizSanitizer, "Discarded extra question: "+truncate(d, 80), nil)
	}
	if st.HasQuestion(q.Text) {
		st = st.record(s.Now(), RoleAssistant, ActionQuizDuplicate, "Duplicate question detected (kept).", nil)
	}

	st.PreviousQuestions = append(st.PreviousQuestions, q.Text)
	st.QuizQuestion = q.Text
	st.QuizAnswer = ""
	st.Grade = ""
	st.Justification = ""
	st.QuizzesTaken++

	return st.record(s.Now(), RoleAssistant, ActionCreateQuizComplete,
		"Generated sanitized quiz question for "+st.Topic,
		map[string]string{"question_preview": preview(q.Text)})
}

func (s *Sequencer) presentQuiz(st State) State {
	s.Console.Heading(MsgQuizHeading)
	s.Console.Block(st.QuizQuestion)
	return st
}

func (s *Sequencer) getAnswer(ctx context.Context, st State) (State, error) {
	s.Console.Println("")
	answer, err := s.Console.Prompt(ctx, PromptAnswer)
	if err != nil {
		return st, err
	}
	st.QuizAnswer = strings.TrimSpace(answer)
	return st.record(s.Now(), RoleUser, ActionAnswerSubmission, "Quiz answer: "+st.QuizAnswer,
		map[string]string{"question": st.QuizQuestion}), nil
}

func (s *Sequencer) gradeQuiz(ctx context.Context, st State) State {
	st = st.record(s.Now(), RoleUser, ActionGradeQuiz, "Requesting grade for quiz on "+st.Topic,
		map[string]string{"user_answer": st.QuizAnswer})

	res, err := s.Grader.Grade(ctx, st.Summary, st.QuizQuestion, st.QuizAnswer)
	if err != nil {
		s.Logger.Warn("grading failed", "topic", st.Topic, "error", err)
	}
	st.Grade = res.Grade
	st.Justification = res.Justification
	st.Grades = append(st.Grades, res.Grade)

	return st.record(s.Now(), RoleAssistant, ActionGradeQuizComplete, "Completed grading for "+st.Topic,
		map[string]string{"grading_preview": preview(res.String())})
}

func (s *Sequencer) presentFeedback(ctx context.Context, st State) (State, error) {
	s.Console.Heading(MsgFeedback)
	s.Console.Result("Grade: "+string(st.Grade), toneFor(st.Grade))
	s.Console.Println("Justification: " + st.Justification)

	for {
		s.Console.Println("")
		input, err := s.Console.Prompt(ctx, PromptNextAction)
		if err != nil {
			return st, err
		}
		choice, ok := ParseChoice(input)
		if !ok {
			s.Console.Println(MsgInvalidChoice)
			continue
		}

		st.Choice = choice
		st = st.record(s.Now(), RoleUser, ActionChoice, "Next action choice: "+string(choice), nil)
		switch choice {
		case ChoiceQuiz:
			s.Console.Println(MsgAnotherQuiz)
		case ChoiceNew:
			s.Console.Println(MsgNewTopic)
		}
		return st, nil
	}
}

func toneFor(g quiz.Grade) console.Tone {
	switch g {
	case quiz.GradeA, quiz.GradeB:
		return console.ToneGood
	case quiz.GradeC:
		return console.ToneFair
	}
	return console.TonePoor
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func preview(s string) string {
	if len([]rune(s)) > 100 {
		return truncate(s, 100) + "..."
	}
	return s
}
