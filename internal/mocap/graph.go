package mocap

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
)

var edgeLine = regexp.MustCompile(`^(\w+)\s+(\w+)$`)

// LoadJointGraph reads the skeleton edge list. Every line names one bone
// as a pair of joint names:
//
//	head neck
//	neck leftShoulder
//	neck rightShoulder
//
// Joints receive ids in order of first appearance. Lines that are not
// exactly two names, blank lines included, are an error.
func LoadJointGraph(path string) (*JointGraph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ids := make(map[string]int)
	g := &JointGraph{}
	line := 0
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line++
		m := edgeLine.FindStringSubmatch(sc.Text())
		if m == nil {
			return nil, &LoadError{
				Path: path, Line: line,
				Wrapped: fmt.Errorf("%w: %q", ErrGraphLine, sc.Text()),
			}
		}
		g.Edges = append(g.Edges, [2]int{g.jointID(ids, m[1]), g.jointID(ids, m[2])})
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Path: path, Wrapped: err}
	}
	return g, nil
}

func (g *JointGraph) jointID(ids map[string]int, name string) int {
	id, ok := ids[name]
	if !ok {
		id = len(g.Joints)
		ids[name] = id
		g.Joints = append(g.Joints, name)
	}
	return id
}
