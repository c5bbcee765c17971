package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/wingbox/internal/emit"
	"github.com/alexiusacademia/wingbox/internal/pipeline"
	"github.com/alexiusacademia/wingbox/internal/report"
	"github.com/spf13/cobra"
)

var (
	verifyNodes string
	verifyTol   float64
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Compare a node table against a fresh run",
	Long: `Regenerate the topology in memory and compare every node against a
node table written by 'wingbox generate --nodes'.

Examples:
  wingbox verify --nodes nodes.txt
  wingbox verify -p wing.json5 -d ./uCRM --nodes nodes.txt --tol 1e-6`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	addInputFlags(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyNodes, "nodes", "", "Node table to check [required]")
	verifyCmd.MarkFlagRequired("nodes")
	verifyCmd.Flags().Float64Var(&verifyTol, "tol", 1e-9, "Coordinate tolerance (m)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	p, err := loadParameters()
	if err != nil {
		return fmt.Errorf("loading parameters: %w", err)
	}
	r, _ := newReader(p)

	f, err := os.Open(verifyNodes)
	if err != nil {
		return err
	}
	defer f.Close()
	got, err := emit.ReadNodeTable(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", verifyNodes, err)
	}

	rec := emit.NewRecorder(pipeline.Start(p))
	if _, err := pipeline.Generate(p, r, rec, pipeline.Options{Logger: newLogger()}); err != nil {
		return err
	}
	diff := emit.Diff(rec.NodeTable(), got, verifyTol)

	out := cmd.OutOrStdout()
	report.Banner(out, "NODE TABLE VERIFICATION")
	if len(diff) == 0 {
		fmt.Fprint(out, report.SummaryBox("MATCH", []string{
			fmt.Sprintf("%d nodes within %g m", len(got), verifyTol),
		}))
		fmt.Fprintln(out)
		return nil
	}

	report.Heading(out, "MISMATCHES")
	shown := min(len(diff), 20)
	for _, d := range diff[:shown] {
		switch {
		case d.Missing:
			fmt.Fprintf(out, "  node %d missing from %s\n", d.ID, verifyNodes)
		case d.Extra:
			fmt.Fprintf(out, "  node %d not produced by this run\n", d.ID)
		default:
			fmt.Fprintf(out, "  node %d: expected %v, found %v\n", d.ID, d.Want, d.Got)
		}
	}
	if shown < len(diff) {
		fmt.Fprintf(out, "  ... and %d more\n", len(diff)-shown)
	}
	fmt.Fprintln(out)
	return fmt.Errorf("%d of %d nodes differ", len(diff), len(got))
}
