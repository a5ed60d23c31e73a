package shader

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Marker is the token that starts a stage section in a shader file.
const Marker = "#shader"

// Source holds the per-stage text split out of a shader file.
type Source struct {
	Vertex   string
	Fragment string

	// Discarded counts lines that came before the first stage marker.
	Discarded int
}

// Empty reports whether both stages are empty.
func (s Source) Empty() bool {
	return s.Vertex == "" && s.Fragment == ""
}

type section int

const (
	sectionNone section = iota
	sectionVertex
	sectionFragment
)

// Parse splits a shader file into its vertex and fragment sections.
//
// A line containing "#shader" switches the active section to vertex or
// fragment depending on which word it also contains; a marker naming neither
// keeps the current section. Marker lines are dropped. Every other line is
// appended, newline-terminated, to the active section. Lines before the first
// recognised marker are discarded.
func Parse(r io.Reader) (Source, error) {
	var sp splitter

	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			sp.add(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Source{}, fmt.Errorf("reading shader source: %w", err)
		}
	}

	return Source{
		Vertex:    sp.vertex.String(),
		Fragment:  sp.fragment.String(),
		Discarded: sp.discarded,
	}, nil
}

type splitter struct {
	vertex    strings.Builder
	fragment  strings.Builder
	active    section
	discarded int
}

func (sp *splitter) add(line string) {
	if strings.Contains(line, Marker) {
		switch {
		case strings.Contains(line, "vertex"):
			sp.active = sectionVertex
		case strings.Contains(line, "fragment"):
			sp.active = sectionFragment
		}
		return
	}

	switch sp.active {
	case sectionVertex:
		sp.vertex.WriteString(line)
		sp.vertex.WriteByte('\n')
	case sectionFragment:
		sp.fragment.WriteString(line)
		sp.fragment.WriteByte('\n')
	default:
		sp.discarded++
	}
}

// ParseString splits shader text held in memory.
func ParseString(text string) Source {
	// strings.Reader never returns a read error
	src, _ := Parse(strings.NewReader(text))
	return src
}
