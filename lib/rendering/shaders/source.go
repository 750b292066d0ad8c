package shaders

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Stage is one programmable pipeline stage of a combined shader file
type Stage int

const (
	None Stage = iota - 1
	Vertex
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return "none"
	}
}

const directive = "#shader"

// Source holds the GLSL of both stages
type Source struct {
	Vertex   string
	Fragment string
}

// ParseSource splits a combined shader file into its stages. A line
// containing "#shader vertex" or "#shader fragment" switches the stage
// the following lines belong to; the word after the directive names the
// stage. Lines before the first directive are dropped.
func ParseSource(r io.Reader) (*Source, error) {
	var sections [2]strings.Builder
	current := None

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if idx := strings.Index(line, directive); idx >= 0 {
			fields := strings.Fields(line[idx+len(directive):])
			if len(fields) == 0 {
				return nil, errors.Newf("line %d: %s directive without a stage", lineNo, directive)
			}
			switch fields[0] {
			case "vertex":
				current = Vertex
			case "fragment":
				current = Fragment
			default:
				return nil, errors.Newf("line %d: unknown shader stage %q", lineNo, fields[0])
			}
			continue
		}

		if current == None {
			continue
		}
		sections[current].WriteString(line)
		sections[current].WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read shader source")
	}

	src := &Source{
		Vertex:   sections[Vertex].String(),
		Fragment: sections[Fragment].String(),
	}
	if strings.TrimSpace(src.Vertex) == "" {
		return nil, errors.New("no vertex shader section")
	}
	if strings.TrimSpace(src.Fragment) == "" {
		return nil, errors.New("no fragment shader section")
	}
	return src, nil
}

// Get returns the GLSL of one stage
func (s *Source) Get(stage Stage) string {
	switch stage {
	case Vertex:
		return s.Vertex
	case Fragment:
		return s.Fragment
	}
	return ""
}
