package fsutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
)

// ErrMarkerNotFound is returned when a target lacks the BEGIN/END lines of
// a generated section.
var ErrMarkerNotFound = errors.New("fsutil: generated section markers not found")

// Marker lines contain these strings followed by the section name, e.g.
// "# BEGIN GENERATED MODELS" or "// END GENERATED DECLARATIONS".
const (
	beginMarker = "BEGIN GENERATED "
	endMarker   = "END GENERATED "
)

// Splice replaces the lines between the BEGIN and END markers of section
// with fragment. The marker lines themselves are kept.
func Splice(content []byte, section string, fragment []byte) ([]byte, error) {
	lines := bytes.SplitAfter(content, []byte("\n"))

	begin, end := -1, -1
	for i, line := range lines {
		switch {
		case begin == -1 && isMarker(line, beginMarker+section):
			begin = i
		case begin != -1 && isMarker(line, endMarker+section):
			end = i
		}
		if end != -1 {
			break
		}
	}
	if begin == -1 || end == -1 {
		return nil, fmt.Errorf("%w: section %s", ErrMarkerNotFound, section)
	}

	var out bytes.Buffer
	for _, line := range lines[:begin+1] {
		out.Write(line)
	}
	out.Write(fragment)
	if len(fragment) > 0 && !bytes.HasSuffix(fragment, []byte("\n")) {
		out.WriteByte('\n')
	}
	for _, line := range lines[end:] {
		out.Write(line)
	}
	return out.Bytes(), nil
}

// isMarker matches a marker as a whole trailing word, so that section
// MODELS does not match a MODELS_EXTRA marker.
func isMarker(line []byte, marker string) bool {
	trimmed := bytes.TrimRight(line, " \t\r\n")
	idx := bytes.Index(trimmed, []byte(marker))
	return idx != -1 && idx+len(marker) == len(trimmed)
}

// Insertion is one generated section to splice into a file.
type Insertion struct {
	Section  string
	Fragment []byte
}

// SpliceFile reads path and applies the insertions in order, returning the
// new content without writing it.
func SpliceFile(path string, insertions ...Insertion) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("fsutil: read %s: %w", path, err)
	}
	for _, ins := range insertions {
		content, err = Splice(content, ins.Section, ins.Fragment)
		if err != nil {
			return File{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return File{Path: path, Content: content}, nil
}
