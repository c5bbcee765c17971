package oml

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Default file layout of the uCRM-9 data set
const (
	DefaultCoordFile  = "uCRM_9_Coord.txt"
	DefaultAirfoilDir = "uCRM_9_Airfoil_Data"
)

// FileReader reads the OML from whitespace separated text files:
//
//	<Dir>/<CoordFile>                               id x y z, 21 LE rows then 21 TE rows
//	<Dir>/<AirfoilDir>/uCRM-9_wr<pct>_profile.txt   x z per line
type FileReader struct {
	Dir        string
	CoordFile  string
	AirfoilDir string
}

// NewFileReader returns a reader using the default file names under dir
func NewFileReader(dir string) *FileReader {
	return &FileReader{Dir: dir, CoordFile: DefaultCoordFile, AirfoilDir: DefaultAirfoilDir}
}

// ReadOML reads the edge coordinates and derives origin, twist and chord
// per station. Origin X and Z are made relative to the root station.
func (r *FileReader) ReadOML() (Planform, error) {
	path := filepath.Join(r.Dir, r.CoordFile)
	rows, err := readTable(path, 4)
	if err != nil {
		return Planform{}, err
	}
	n := len(StationPercents)
	if len(rows) != 2*n {
		return Planform{}, fmt.Errorf("%s: expected %d rows, got %d", path, 2*n, len(rows))
	}

	stations := make([]Station, n)
	for i := 0; i < n; i++ {
		front := r3.Vec{X: rows[i][1], Y: rows[i][2], Z: rows[i][3]}
		rear := r3.Vec{X: rows[n+i][1], Y: rows[n+i][2], Z: rows[n+i][3]}
		stations[i] = FromEdges(StationPercents[i], front, rear)
	}
	x0, z0 := stations[0].Origin.X, stations[0].Origin.Z
	for i := range stations {
		stations[i].Origin.X -= x0
		stations[i].Origin.Z -= z0
	}
	return Planform{Stations: stations}, nil
}

// ReadAirfoil reads the normalised section tabulated at percent
func (r *FileReader) ReadAirfoil(percent float64) (Section, error) {
	name := fmt.Sprintf("uCRM-9_wr%.0f_profile.txt", percent)
	path := filepath.Join(r.Dir, r.AirfoilDir, name)
	rows, err := readTable(path, 2)
	if err != nil {
		return Section{}, err
	}
	s := Section{X: make([]float64, len(rows)), Z: make([]float64, len(rows))}
	for i, row := range rows {
		s.X[i], s.Z[i] = row[0], row[1]
	}
	if err := s.Validate(); err != nil {
		return Section{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// readTable parses a file of numeric columns. Blank lines and lines
// starting with '#' are skipped.
func readTable(path string, cols int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OML data: %w", err)
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < cols {
			return nil, fmt.Errorf("%s:%d: expected %d columns, got %d", path, line, cols, len(fields))
		}
		row := make([]float64, cols)
		for c := 0; c < cols; c++ {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
			row[c] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
