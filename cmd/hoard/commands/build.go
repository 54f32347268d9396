package commands

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"go.trai.ch/hoard/internal/app"
	"go.trai.ch/hoard/internal/core/domain"
	"go.trai.ch/hoard/internal/ui/output"
	"go.trai.ch/hoard/internal/ui/style"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Bundle the entry module, reusing unchanged modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			showStats, _ := cmd.Flags().GetBool("stats")

			report, err := c.app.Build(cmd.Context(), options(cmd))
			if showStats && report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().BoolP("stats", "s", false, "Print build statistics and cache metrics")
	return cmd
}

func printReport(w io.Writer, report *app.Report) {
	out := output.New(w)
	stats := report.Stats

	switch {
	case stats.HasErrors():
		_, _ = fmt.Fprintf(out, "%s %d module(s) failed\n",
			out.String(style.Cross).Foreground(out.Color(style.Red)), len(stats.Errors))
	case report.Written:
		_, _ = fmt.Fprintf(out, "%s wrote %s\n",
			out.String(style.Check).Foreground(out.Color(style.Green)), report.Output)
	default:
		_, _ = fmt.Fprintf(out, "%s %s unchanged\n",
			out.String(style.Dot).Foreground(out.Color(style.Slate)), report.Output)
	}

	_, _ = fmt.Fprintf(out, "  build     %s\n", stats.BuildID)
	_, _ = fmt.Fprintf(out, "  modules   %d (%d built, %d cached, %d failed)\n",
		len(stats.Result.Modules),
		stats.Built(),
		stats.Cached(),
		stats.Result.Count(domain.ModuleFailed),
	)
	_, _ = fmt.Fprintf(out, "  duration  %s\n", stats.Duration)

	if len(report.Metrics) == 0 {
		return
	}
	_, _ = fmt.Fprintln(out, out.String("metrics").Foreground(out.Color(style.Iris)).Bold())
	for _, name := range slices.Sorted(maps.Keys(report.Metrics)) {
		_, _ = fmt.Fprintf(out, "  %s %g\n", name, report.Metrics[name])
	}
}
