package mocap

import "fmt"

// Load reads a time series file and a joint graph file and validates
// that they describe the same skeleton.
func Load(seriesPath, graphPath string) (*Capture, error) {
	series, err := LoadTimeSeries(seriesPath)
	if err != nil {
		return nil, err
	}
	graph, err := LoadJointGraph(graphPath)
	if err != nil {
		return nil, err
	}
	if err := ValidateJoints(series, graph); err != nil {
		return nil, err
	}
	return &Capture{Series: series, Graph: graph}, nil
}

// ValidateJoints checks that the series columns and the graph name the
// same joints in the same order. The graph file must introduce joints in
// the order the CSV columns do.
func ValidateJoints(series *TimeSeries, graph *JointGraph) error {
	if len(series.Joints) != len(graph.Joints) {
		return fmt.Errorf("%w: series tracks %d joints, graph names %d",
			ErrJointMismatch, len(series.Joints), len(graph.Joints))
	}
	for i := range series.Joints {
		if series.Joints[i] != graph.Joints[i] {
			return fmt.Errorf("%w: series has %q but graph has %q at position %d",
				ErrJointMismatch, series.Joints[i], graph.Joints[i], i)
		}
	}
	return nil
}
