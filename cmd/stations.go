package cmd

import (
	"fmt"

	"github.com/alexiusacademia/wingbox/internal/pipeline"
	"github.com/alexiusacademia/wingbox/internal/report"
	"github.com/spf13/cobra"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Print rib stations and feature crossings",
	Long: `Derive and orient every rib and solve the spar, cap and stringer
crossings without emitting any topology.

Examples:
  wingbox stations
  wingbox stations --params wing.json5 --data ./uCRM`,
	RunE: runStations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
	addInputFlags(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	p, err := loadParameters()
	if err != nil {
		return fmt.Errorf("loading parameters: %w", err)
	}
	r, source := newReader(p)

	g, err := pipeline.Prepare(p, r, pipeline.Options{Logger: newLogger()})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.Banner(out, "WING BOX RIB STATIONS")
	fmt.Fprintf(out, "  Parameters:  %s\n", paramsSource())
	fmt.Fprintf(out, "  OML:         %s\n", source)
	fmt.Fprintln(out)

	report.Heading(out, "RIB STATIONS")
	if err := report.Stations(out, g.Orientation.Stations); err != nil {
		return err
	}
	fmt.Fprintln(out)

	report.Heading(out, "FEATURES")
	if err := report.Features(out, g.Features); err != nil {
		return err
	}
	fmt.Fprintln(out)

	lines := []string{
		fmt.Sprintf("Fuselage rib:  %d", g.Layout.Fuselage),
		fmt.Sprintf("Yehudi rib:    %d", g.Layout.Yehudi),
		fmt.Sprintf("Tip rib:       %d", g.Layout.Tip),
	}
	if g.Orientation.Blended() {
		lines = append(lines, fmt.Sprintf("Kink blend:    ribs %d to %d", g.Orientation.BlendFrom, g.Orientation.BlendTo-1))
	} else {
		lines = append(lines, "Kink blend:    none")
	}
	lines = append(lines, fmt.Sprintf("Absent stringer slots: %d", g.Features.AbsentCount()))
	fmt.Fprint(out, report.SummaryBox("LAYOUT", lines))
	fmt.Fprintln(out)
	return nil
}
