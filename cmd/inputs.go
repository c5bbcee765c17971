package cmd

import (
	"log/slog"
	"os"

	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/wing"
	"github.com/spf13/cobra"
)

// Flags shared by every command that runs the pipeline
var (
	paramsFile string
	dataDir    string
	verbose    bool
)

func addInputFlags(c *cobra.Command) {
	c.Flags().StringVarP(&paramsFile, "params", "p", "", "Path to parameter file (JSON5); uCRM-9 defaults when omitted")
	c.Flags().StringVarP(&dataDir, "data", "d", "", "Directory with OML coordinates and airfoil profiles; analytic demo wing when omitted")
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every stage to stderr")
}

func loadParameters() (*wing.Parameters, error) {
	if paramsFile == "" {
		p := wing.Default()
		return &p, nil
	}
	return wing.LoadFromFile(paramsFile)
}

func newReader(p *wing.Parameters) (oml.Reader, string) {
	if dataDir == "" {
		return oml.NewDemo(p.SemiSpan), "analytic demo wing"
	}
	return oml.NewFileReader(dataDir), dataDir
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func paramsSource() string {
	if paramsFile == "" {
		return "uCRM-9 defaults"
	}
	return paramsFile
}
