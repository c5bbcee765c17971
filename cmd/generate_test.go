package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/pipeline"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

func options() pipeline.Options {
	return pipeline.Options{
		RunID:  uuid.MustParse("3c2f8e1a-5b7d-4e0f-9a61-0d4e2b8c7f15"),
		Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}
}

func smallWing() *wing.Parameters {
	p := wing.Default()
	p.CentralRibs, p.YehudiRibs, p.SemiSpanRibs = 3, 3, 4
	return &p
}

func TestGenerateWritesStream(t *testing.T) {
	p := smallWing()
	path := filepath.Join(t.TempDir(), "wing.txt")

	res, rec, err := generate(path, p, oml.NewDemo(p.SemiSpan), options())
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "# wingbox run 3c2f8e1a-5b7d-4e0f-9a61-0d4e2b8c7f15" {
		t.Errorf("header %q", lines[0])
	}
	c := res.Model.Counts
	if want := 1 + c.Nodes + c.Curves + c.Surfaces + c.Components + c.Assemblies; len(lines) != want {
		t.Errorf("stream has %d lines, want %d", len(lines), want)
	}
	if len(rec.NodeTable()) != c.Nodes {
		t.Errorf("recorded %d nodes, want %d", len(rec.NodeTable()), c.Nodes)
	}
}

func TestGenerateFailureKeepsExistingStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wing.txt")
	good := []byte("# wingbox run earlier\nnode 1 0 0 0\n")
	if err := os.WriteFile(path, good, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		modify func(p *wing.Parameters)
		reader func(p *wing.Parameters) oml.Reader
	}{
		{
			name:   "invalid parameters",
			modify: func(p *wing.Parameters) { p.Spars = 1 },
			reader: func(p *wing.Parameters) oml.Reader { return oml.NewDemo(p.SemiSpan) },
		},
		{
			name:   "missing OML data",
			modify: func(*wing.Parameters) {},
			reader: func(*wing.Parameters) oml.Reader { return oml.NewFileReader(t.TempDir()) },
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := smallWing()
			tt.modify(p)
			if _, _, err := generate(path, p, tt.reader(p), options()); err == nil {
				t.Fatal("expected an error")
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, good) {
				t.Errorf("failed run changed the stream to %q", data)
			}
		})
	}

	var ve *wing.ValidationError
	p := smallWing()
	p.Spars = 1
	if _, _, err := generate(path, p, oml.NewDemo(p.SemiSpan), options()); !errors.As(err, &ve) {
		t.Errorf("got %v, want *wing.ValidationError", err)
	}
}
