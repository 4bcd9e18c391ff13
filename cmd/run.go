package cmd

import (
	"github.com/spf13/cobra"

	"github.com/healthaibot/healthbot/internal/app"
)

// runSession loads config, opens the store and runs one interactive session.
func runSession(cmd *cobra.Command) error {
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

	_, err = app.Run(cmd.Context(), app.Options{
		Config: cfg,
		Events: st.EventRepo(),
		Logger: logger,
	})
	return err
}
