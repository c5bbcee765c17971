package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/alexiusacademia/wingbox/internal/emit"
	"github.com/alexiusacademia/wingbox/internal/oml"
	"github.com/alexiusacademia/wingbox/internal/wing"
)

func params() *wing.Parameters {
	p := wing.Default()
	p.CentralRibs, p.YehudiRibs, p.SemiSpanRibs = 3, 3, 4
	return &p
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestGenerateDeterministic(t *testing.T) {
	p := params()
	var tables []emit.NodeTable
	for i := 0; i < 2; i++ {
		rec := emit.NewRecorder(Start(p))
		res, err := Generate(p, oml.NewDemo(p.SemiSpan), rec, Options{Logger: quiet()})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if res.Model.Counts != rec.Counts() {
			t.Errorf("counts %+v, recorded %+v", res.Model.Counts, rec.Counts())
		}
		tables = append(tables, rec.NodeTable())
	}
	if d := emit.Diff(tables[0], tables[1], 0); len(d) != 0 {
		t.Errorf("two runs differ in %d nodes", len(d))
	}
}

func TestGenerateStartIDs(t *testing.T) {
	p := params()
	p.IDs.Component = 2
	p.IDs.Assembly = 5
	rec := emit.NewRecorder(Start(p))
	res, err := Generate(p, oml.NewDemo(p.SemiSpan), rec, Options{Logger: quiet()})
	if err != nil {
		t.Fatal(err)
	}
	first := res.Model.Assemblies[res.Model.AssemblyOrder[0]]
	if first != 5 {
		t.Errorf("first assembly ID %d, want 5", first)
	}
	if Start(p).Node != 1 {
		t.Error("nodes must start at 1")
	}
}

func TestGenerateLogsRun(t *testing.T) {
	p := params()
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	run := uuid.MustParse("0b8d1c55-8f0e-4f38-9a4a-2f6f0d2b7c11")

	if _, err := Generate(p, oml.NewDemo(p.SemiSpan), emit.NewRecorder(Start(p)), Options{RunID: run, Logger: log}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"run=" + run.String(),
		"msg=\"rib stations derived\"",
		"msg=\"topology emitted\"",
		"station.rib=0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log lacks %q", want)
		}
	}
}

func TestGenerateManySpars(t *testing.T) {
	for _, spars := range []int{3, 4} {
		p := wing.Default()
		p.Spars = spars
		rec := emit.NewRecorder(Start(&p))
		res, err := Generate(&p, oml.NewDemo(p.SemiSpan), rec, Options{Logger: quiet()})
		if err != nil {
			t.Fatalf("%d spars: %v", spars, err)
		}
		for s := 1; s <= spars; s++ {
			if _, ok := res.Model.Assemblies[fmt.Sprintf("Spars_No_%d", s)]; !ok {
				t.Errorf("%d spars: no Spars_No_%d assembly", spars, s)
			}
		}
	}
}

func TestPrepareRejectsInvalidParameters(t *testing.T) {
	p := params()
	p.Spars = 1
	_, err := Prepare(p, oml.NewDemo(p.SemiSpan), Options{Logger: quiet()})
	var ve *wing.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want *wing.ValidationError", err)
	}
}

func TestPrepareReaderError(t *testing.T) {
	p := params()
	r := oml.NewFileReader(t.TempDir())
	_, err := Prepare(p, r, Options{Logger: quiet()})
	if err == nil || !strings.Contains(err.Error(), "outer mould line") {
		t.Fatalf("got %v, want wrapped reader error", err)
	}
}
