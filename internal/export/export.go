package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/san-kum/motionrender/internal/mocap"
)

// Document is the JSON shape of an exported capture. Missing positions
// become null, matching the gaps in the source file.
type Document struct {
	Joints []string         `json:"joints"`
	Edges  [][2]int         `json:"edges"`
	Times  []jsonFloat      `json:"times"`
	Frames [][][3]jsonFloat `json:"frames"`
}

// jsonFloat marshals non-finite values as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}

// WriteJSON exports a capture as a single JSON document.
func WriteJSON(ts *mocap.TimeSeries, g *mocap.JointGraph, path string, indent bool) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return EncodeJSON(file, ts, g, indent)
}

// EncodeJSON writes the JSON document to w. A nil graph yields an empty
// edge list.
func EncodeJSON(w io.Writer, ts *mocap.TimeSeries, g *mocap.JointGraph, indent bool) error {
	doc := Document{
		Joints: ts.Joints,
		Edges:  [][2]int{},
		Times:  make([]jsonFloat, len(ts.Times)),
		Frames: make([][][3]jsonFloat, len(ts.Frames)),
	}
	if g != nil && g.Edges != nil {
		doc.Edges = g.Edges
	}
	for i, t := range ts.Times {
		doc.Times[i] = jsonFloat(t)
	}
	for i, frame := range ts.Frames {
		doc.Frames[i] = make([][3]jsonFloat, len(frame))
		for j, p := range frame {
			doc.Frames[i][j] = [3]jsonFloat{jsonFloat(p.X), jsonFloat(p.Y), jsonFloat(p.Z)}
		}
	}

	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

// WriteCSV re-emits a series in the canonical capture format, so a
// sliced or strided series round-trips through the loader. Missing
// positions become empty cells.
func WriteCSV(ts *mocap.TimeSeries, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	header := make([]string, 0, 1+3*ts.JointCount())
	header = append(header, "timeStamp")
	for _, name := range ts.Joints {
		header = append(header, name+"X", name+"Y", name+"Z")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, frame := range ts.Frames {
		row[0] = formatCell(ts.Times[i])
		for j, p := range frame {
			row[1+j*3] = formatCell(p.X)
			row[2+j*3] = formatCell(p.Y)
			row[3+j*3] = formatCell(p.Z)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("export: frame %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatCell(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
