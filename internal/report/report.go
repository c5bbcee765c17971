// Package report formats run results for the terminal
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/alexiusacademia/wingbox/internal/features"
	"github.com/alexiusacademia/wingbox/internal/ribs"
	"github.com/alexiusacademia/wingbox/internal/structure"
)

const rule = "───────────────────────────────────────────────────────────────"

// Banner writes a title framed by double rules
func Banner(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(w)
}

// Heading writes a section heading
func Heading(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, rule)
}

// SummaryBox draws a box around a title and lines
func SummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	width += 4

	border := strings.Repeat("═", width)
	pad := func(s string) string {
		return s + strings.Repeat(" ", width-4-utf8.RuneCountInString(s))
	}
	fmt.Fprintf(&sb, "  ╔%s╗\n", border)
	fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(title))
	fmt.Fprintf(&sb, "  ╠%s╣\n", border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  ║  %s  ║\n", pad(line))
	}
	fmt.Fprintf(&sb, "  ╚%s╝\n", border)

	return sb.String()
}

// Stations writes one row per rib station
func Stations(w io.Writer, stations []*ribs.Station) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Rib\tRegion\tY (m)\tOrigin X (m)\tChord (m)\tTwist (°)\tIncl. (°)\tLE X (m)\tTE X (m)\n")
	fmt.Fprintf(tw, "  ───\t──────\t─────\t────────────\t─────────\t─────────\t─────────\t────────\t────────\n")
	for _, st := range stations {
		fmt.Fprintf(tw, "  %d\t%s\t%.4f\t%.4f\t%.4f\t%.3f\t%.3f\t%.4f\t%.4f\n",
			st.Index, st.Region, st.Y, st.Origin.X, st.Chord,
			degrees(st.Twist), degrees(st.Inclination), st.LE.X, st.TE.X)
	}
	return tw.Flush()
}

// Features writes one row per feature line with its presence and chordwise
// crossing at the root and tip rib
func Features(w io.Writer, set *features.Set) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Feature\tRibs present\tRoot X (m)\tTip X (m)\n")
	fmt.Fprintf(tw, "  ───────\t────────────\t──────────\t─────────\n")
	for _, l := range set.All() {
		ribCount := len(l.Slots[0])
		present := 0
		for i := 0; i < ribCount; i++ {
			if l.Present(i) {
				present++
			}
		}
		fmt.Fprintf(tw, "  %s\t%d/%d\t%s\t%s\n", l.Name(), present, ribCount,
			crossing(l, 0), crossing(l, ribCount-1))
	}
	return tw.Flush()
}

func crossing(l *features.Line, i int) string {
	if !l.Present(i) {
		return "absent"
	}
	return fmt.Sprintf("%.4f", l.Slot(0, i).Point.X)
}

// Topology returns the summary lines of a built model
func Topology(m *structure.Model) []string {
	c := m.Counts
	return []string{
		fmt.Sprintf("Nodes:       %d (%d stringer profile)", c.Nodes, m.ProfileNodes),
		fmt.Sprintf("Curves:      %d (%d skin rungs)", c.Curves, m.RungCurves),
		fmt.Sprintf("Surfaces:    %d", c.Surfaces),
		fmt.Sprintf("Components:  %d", c.Components),
		fmt.Sprintf("Assemblies:  %d", c.Assemblies),
	}
}

// Groups writes the component count of every group in creation order
func Groups(w io.Writer, m *structure.Model) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Group\tComponents\n")
	fmt.Fprintf(tw, "  ─────\t──────────\n")
	for _, name := range m.GroupOrder {
		fmt.Fprintf(tw, "  %s\t%d\n", name, len(m.Groups[name]))
	}
	return tw.Flush()
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
