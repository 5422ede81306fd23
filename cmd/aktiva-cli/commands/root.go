package commands

import (
	"context"
	"fmt"
	"os"

	"aktiva-backend/lib/aktiva"
	"aktiva-backend/lib/restyutil"
	"aktiva-backend/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool

func init() {
	verbose = rootCmd.PersistentFlags().BoolP(
		"verbose", "v", false,
		"Enable debug logging and dump every HTTP exchange to .dev/resty/aktiva.",
	)
}

var rootCmd = &cobra.Command{
	Use:   "aktiva-cli",
	Short: "aktiva-cli extracts accounting data from the Merit Aktiva API.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		if *verbose {
			aktiva.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(".dev/resty/aktiva"),
			)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
