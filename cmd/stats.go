package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/healthaibot/healthbot/internal/quiz"
	"github.com/healthaibot/healthbot/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics from past sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QuerySessionEvents(cmd.Context(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}

		ended := lo.Filter(events, func(e store.SessionEvent, _ int) bool { return e.Action == store.SessionEnd })
		if len(ended) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No completed sessions yet.")
			return nil
		}
		printStats(cmd.OutOrStdout(), summarizeSessions(ended))
		return nil
	},
}

// sessionStats aggregates completed sessions.
type sessionStats struct {
	Sessions int
	Topics   int
	Quizzes  int
	Time     time.Duration
	Grades   map[quiz.Grade]int
}

func summarizeSessions(ended []store.SessionEvent) sessionStats {
	s := sessionStats{Sessions: len(ended), Grades: map[quiz.Grade]int{}}
	for _, e := range ended {
		s.Topics += e.TopicsStarted
		s.Quizzes += e.QuizzesTaken
		s.Time += time.Duration(e.DurationSecs) * time.Second
		for _, g := range strings.Split(e.Grades, ",") {
			if grade := quiz.Grade(strings.TrimSpace(g)); grade.Valid() {
				s.Grades[grade]++
			}
		}
	}
	return s
}

func printStats(w io.Writer, s sessionStats) {
	fmt.Fprintf(w, "Sessions:  %d\n", s.Sessions)
	fmt.Fprintf(w, "Topics:    %d\n", s.Topics)
	fmt.Fprintf(w, "Quizzes:   %d\n", s.Quizzes)
	fmt.Fprintf(w, "Time:      %s\n", s.Time.Round(time.Second))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Grades")
	fmt.Fprintln(w, strings.Repeat("─", 24))
	total := lo.Sum(lo.Values(s.Grades))
	for _, g := range quiz.Grades {
		n := s.Grades[g]
		var pct float64
		if total > 0 {
			pct = float64(n) / float64(total) * 100
		}
		fmt.Fprintf(w, "%-3s  %5d  %5.0f%%\n", g, n, pct)
	}
}
