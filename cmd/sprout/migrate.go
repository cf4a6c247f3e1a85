package main

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the content schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, stop, err := a.start(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer stop()

			a.logger.Info("Migrations applied")
			return nil
		},
	}
}
