package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/ada/internal/cli"
	"github.com/theirongolddev/ada/internal/model"
	"github.com/theirongolddev/ada/internal/pipeline"
	"github.com/theirongolddev/ada/internal/report"
)

var (
	flagProjectPDF string
	projectInputs  inputFlags
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project compound growth and break down monthly income",
	Long: "Runs the projection and breakdown offline, without asking the advisor. " +
		"Growth is compounded monthly at a fixed annual rate.",
	RunE: runProject,
}

func init() {
	projectInputs.register(projectCmd)
	projectCmd.Flags().StringVar(&flagProjectPDF, "pdf", "", "Also write the results to this PDF file")
	rootCmd.AddCommand(projectCmd)
}

func runProject(_ *cobra.Command, _ []string) error {
	raw, err := projectInputs.raw()
	if err != nil {
		return err
	}
	in := pipeline.Coerce(raw)
	if !pipeline.Chartworthy(in) {
		return errors.New("nothing to project: --investment and --years must both be above zero")
	}

	points := pipeline.Project(in.MonthlyInvestment, in.HorizonYears)
	terminal := pipeline.TerminalValue(in.MonthlyInvestment, in.HorizonYears)
	cats := pipeline.BuildBreakdown(in, terminal)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("Projection · %s at %s", cli.FormatHorizon(in.HorizonYears, len(points)), cli.FormatPercent(pipeline.AnnualRate))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.InputsTable(in)))
	printProjection(points, cats, terminal, in.HorizonYears)

	if flagProjectPDF == "" {
		return nil
	}
	return writeReport(flagProjectPDF, report.Report{
		Inputs:      in,
		Projection:  points,
		Breakdown:   cats,
		Terminal:    terminal,
		GeneratedAt: time.Now(),
	})
}

// printProjection prints the year table, a growth sparkline and the breakdown.
// years is the requested horizon; the growth line reports the span of points.
func printProjection(points []model.ProjectionPoint, cats []model.BreakdownCategory, terminal int64, years int) {
	fmt.Print(cli.RenderTable(cli.ProjectionTable(points)))

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Value)
	}
	fmt.Printf("  Growth  %s  %s → %s after %s\n\n",
		cli.RenderSparkline(values), cli.FormatCompactGBP(points[0].Value),
		cli.FormatCompactGBP(terminal), cli.FormatHorizon(years, len(points)))

	fmt.Print(cli.RenderTable(cli.BreakdownTable(cats)))

	maxTotal := 0.0
	labelW := 0
	for _, c := range cats {
		maxTotal = max(maxTotal, c.Total())
		labelW = max(labelW, len(c.Label))
	}
	for _, c := range cats {
		fmt.Println(cli.RenderHorizontalBar(c.Label, c.Total(), maxTotal, labelW, 40))
	}
	fmt.Println()
}

func writeReport(path string, r report.Report) error {
	f, err := os.Create(path) //nolint:gosec // output path is given by the local user
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.WritePDF(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	progress("  Saved %s\n", path)
	return nil
}
