package commands

import (
	"os"
	"strconv"
	"strings"

	"aktiva-backend/lib/aktiva"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Lists the extraction catalogue.",
	Run: func(cmd *cobra.Command, args []string) {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Name", "Path", "Primary Key", "Window", "Cursor Field"})

		for _, res := range aktiva.Resources {
			window := ""
			if res.Windowed() {
				window = strconv.Itoa(res.Window.IntervalDays) + "d"
			}
			cursorField := ""
			if res.Incremental != nil {
				cursorField = res.Incremental.CursorField
			}
			t.AppendRow(table.Row{
				res.Name,
				res.Path,
				strings.Join(res.PrimaryKey, ", "),
				window,
				cursorField,
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
