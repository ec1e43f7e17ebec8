package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Jalankan checkItemsStatus satu kali lalu keluar",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context) error {
			report, err := buildComponents(cfg).reconciler.RunOnce(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("activated=%d overdue=%d auto_canceled=%d\n", report.Activated, report.Overdue, report.AutoCanceled)
			return nil
		})
	},
}
