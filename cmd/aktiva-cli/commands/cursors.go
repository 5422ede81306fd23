package commands

import (
	"os"
	"time"

	"aktiva-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var cursorsDb *string

func init() {
	cursorsDb = cursorsCmd.Flags().String("db", "", "The database to read cursors from.")
	rootCmd.AddCommand(cursorsCmd)
}

var cursorsCmd = &cobra.Command{
	Use:   "cursors",
	Short: "Shows the stored incremental cursor of every resource.",
	Run: func(cmd *cobra.Command, args []string) {
		service, database := openService(*cursorsDb)
		defer database.Close()

		cursors, err := service.Cursors(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list cursors", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Resource", "Cursor", "Updated"})
		for _, c := range cursors {
			t.AppendRow(table.Row{
				c.Resource,
				c.Value,
				time.Unix(c.UpdatedAt, 0).UTC().Format(time.RFC3339),
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
