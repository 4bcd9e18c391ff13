package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthaibot/healthbot/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Run the allow-listed web search for a topic and print the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
			cfg.Tavily.MaxResults = n
		}

		topic := strings.Join(args, " ")
		query := search.BuildQuery(topic)
		s := search.WithLogging(search.NewTavily(cfg.Search()), "tavily", st.EventRepo(), logger)

		text, err := s.Search(cmd.Context(), query)
		if errors.Is(err, search.ErrMissingAPIKey) {
			return errors.New(search.MissingKeyHint)
		}
		if err != nil {
			return fmt.Errorf("search %q: %w", topic, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Query: %s\n\n", query)
		if text == "" {
			fmt.Fprintln(out, "No results found.")
			return nil
		}
		fmt.Fprintln(out, text)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("max-results", "n", 0, "Maximum number of results (default from config, 5)")
}
