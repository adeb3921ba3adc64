package main

import (
	"fmt"

	"github.com/mcdev12/teamsheet/go/internal/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			ctx := cmd.Context()
			db, err := openSQL(ctx, root.logger)
			if err != nil {
				return withCode(exitFailure, err)
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			switch direction {
			case "down":
				if err := migrations.Down(ctx, db); err != nil {
					return withCode(exitFailure, err)
				}
				fmt.Fprintln(out, "Rolled back the latest migration")
			case "status":
				statuses, err := migrations.List(ctx, db)
				if err != nil {
					return withCode(exitFailure, err)
				}
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(out, "%05d  %-8s %s\n", s.Version, state, s.Source)
				}
			default:
				n, err := migrations.Up(ctx, db)
				if err != nil {
					return withCode(exitFailure, err)
				}
				fmt.Fprintf(out, "Applied %d migration(s)\n", n)
			}
			return nil
		},
	}
}
