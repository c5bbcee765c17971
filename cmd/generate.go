package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/alexiusacademia/wingbox/internal/emit"
	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/pipeline"
	"github.com/alexiusacademia/wingbox/internal/report"
	"github.com/alexiusacademia/wingbox/internal/wing"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	generateOut   string
	generateNodes string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the wing box topology",
	Long: `Lay out ribs, spars, spar caps and stringers inside the outer mould
line and write every created node, curve, surface, component and assembly
to a command stream, one element per line.

Examples:
  wingbox generate
  wingbox generate --params ucrm9.json5 --data ./uCRM --out wing.txt
  wingbox generate -p wing.json5 --nodes nodes.txt -v`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addInputFlags(generateCmd)
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "wingbox_commands.txt", "Command stream output file")
	generateCmd.Flags().StringVarP(&generateNodes, "nodes", "n", "", "Also write the node table to this file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := loadParameters()
	if err != nil {
		return fmt.Errorf("loading parameters: %w", err)
	}
	r, source := newReader(p)

	run := uuid.New()
	res, rec, err := generate(generateOut, p, r, pipeline.Options{RunID: run, Logger: newLogger()})
	if err != nil {
		return err
	}

	if generateNodes != "" {
		nf, err := os.Create(generateNodes)
		if err != nil {
			return err
		}
		defer nf.Close()
		if err := emit.WriteNodeTable(nf, rec.NodeTable()); err != nil {
			return fmt.Errorf("writing %s: %w", generateNodes, err)
		}
	}

	out := cmd.OutOrStdout()
	report.Banner(out, "WING BOX TOPOLOGY")
	fmt.Fprintf(out, "  Run:         %s\n", run)
	fmt.Fprintf(out, "  Parameters:  %s\n", paramsSource())
	fmt.Fprintf(out, "  OML:         %s\n", source)
	fmt.Fprintf(out, "  Ribs:        %d (%d flange variants)\n", res.Layout.Len(), len(res.Stations)-1)
	fmt.Fprintf(out, "  Stream:      %s\n", generateOut)
	if generateNodes != "" {
		fmt.Fprintf(out, "  Node table:  %s\n", generateNodes)
	}
	fmt.Fprintln(out)

	report.Heading(out, "COMPONENT GROUPS")
	if err := report.Groups(out, res.Model); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, report.SummaryBox("TOPOLOGY", report.Topology(res.Model)))
	fmt.Fprintln(out)
	return nil
}

// generate runs the pipeline into memory and writes the command stream to
// path only when the whole topology was built. A failed run leaves path
// untouched.
func generate(path string, p *wing.Parameters, r oml.Reader, opts pipeline.Options) (*pipeline.Result, *emit.Recorder, error) {
	if opts.RunID == uuid.Nil {
		opts.RunID = uuid.New()
	}
	var buf bytes.Buffer
	start := pipeline.Start(p)
	stream := emit.NewStreamWriter(&buf, opts.RunID, start)
	rec := emit.NewRecorder(start)

	res, err := pipeline.Generate(p, r, emit.Tee{stream, rec}, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := stream.Flush(); err != nil {
		return nil, nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return res, rec, nil
}
