package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthaibot/healthbot/internal/console"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all recorded LLM, search and session events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			con := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), false)
			defer con.Close()
			answer, err := con.Prompt(cmd.Context(), "This deletes all recorded events. Continue? [y/N] ")
			if err != nil || !strings.EqualFold(strings.TrimSpace(answer), "y") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.EventRepo().Reset(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset events: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d events.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
