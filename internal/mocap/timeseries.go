package mocap

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadTimeSeries reads a capture recording from a CSV file. The header
// must name a timestamp column followed by X,Y,Z column triples, one
// triple per tracked joint:
//
//	timeStamp, headX, headY, headZ, neckX, neckY, neckZ, ...
//	0, 12.1, -3.0, 140.2, 11.8, -2.9, 155.0, ...
//
// Header cells are whitespace-trimmed. The joint name is the triple's
// column name with the trailing axis letter chopped off; all three
// columns of a triple must agree on it. Empty value cells load as NaN
// (markers drop out mid-capture); anything else that does not parse as a
// float is an error.
func LoadTimeSeries(path string) (*TimeSeries, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, &LoadError{Path: path, Wrapped: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Path: path, Wrapped: ErrEmptySeries}
	}

	header := records[0]
	for i, cell := range header {
		header[i] = strings.TrimSpace(cell)
	}
	if (len(header)-1)%3 != 0 {
		return nil, &LoadError{
			Path: path, Line: 1,
			Wrapped: fmt.Errorf("%w: got %d columns", ErrColumnCount, len(header)),
		}
	}

	jointCount := (len(header) - 1) / 3
	joints := make([]string, 0, jointCount)
	for n := 0; n < jointCount; n++ {
		x := chopAxis(header[n*3+1])
		y := chopAxis(header[n*3+2])
		z := chopAxis(header[n*3+3])
		if x != y || y != z {
			return nil, &LoadError{
				Path: path, Line: 1,
				Wrapped: fmt.Errorf("%w: (%s, %s, %s)", ErrJointColumns, header[n*3+1], header[n*3+2], header[n*3+3]),
			}
		}
		joints = append(joints, x)
	}

	ts := &TimeSeries{
		Joints: joints,
		Times:  make([]float64, 0, len(records)-1),
		Frames: make([][]Vec3, 0, len(records)-1),
	}
	for i, record := range records[1:] {
		row := make([]float64, len(record))
		for j, cell := range record {
			v, err := parseCell(cell)
			if err != nil {
				return nil, &LoadError{
					Path: path, Line: i + 2,
					Wrapped: fmt.Errorf("column %q: %w", header[j], err),
				}
			}
			row[j] = v
		}
		ts.Times = append(ts.Times, row[0])
		frame := make([]Vec3, len(joints))
		for n := range joints {
			frame[n] = Vec3{X: row[n*3+1], Y: row[n*3+2], Z: row[n*3+3]}
		}
		ts.Frames = append(ts.Frames, frame)
	}
	if len(ts.Times) == 0 {
		return nil, &LoadError{Path: path, Wrapped: ErrEmptySeries}
	}
	return ts, nil
}

// chopAxis strips the trailing axis letter from a coordinate column name.
func chopAxis(col string) string {
	if col == "" {
		return ""
	}
	return strings.TrimSpace(col[:len(col)-1])
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
