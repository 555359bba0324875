// Package editbuffer renders documentation records as editable text and
// parses the edited text back into field values.
//
// Format: lines starting with '#' are comments. Every field starts at the
// beginning of a line with the marker "___" followed by "name:" and runs,
// possibly over several lines, until the next marker line.
package editbuffer

import (
	"regexp"
	"strings"

	"github.com/example/schemadoc/internal/core/catalog"
)

// Marker introduces a field. Free text may contain colons and newlines;
// only a marker at the start of a line begins a new field.
const Marker = "___"

const readOnlyHeader = "# You can't edit these commented fields:"

// Field is one named value of a record, already formatted as text.
type Field struct {
	Name  string
	Value string
}

var segmentPattern = regexp.MustCompile(`(?s)^(\w+):(.*)$`)

// Render writes fields as a buffer. Fields named in uneditable are emitted as
// comments for reference and are never parsed back.
func Render(fields []Field, uneditable []string) string {
	readOnly := make(map[string]bool, len(uneditable))
	for _, name := range uneditable {
		readOnly[name] = true
	}

	var commented, editable strings.Builder
	commented.WriteString(readOnlyHeader + "\n")
	for _, f := range fields {
		if readOnly[f.Name] {
			value := strings.ReplaceAll(f.Value, "\n", "\n# ")
			commented.WriteString("# " + Marker + f.Name + ": " + value + "\n")
			continue
		}
		editable.WriteString(Marker + f.Name + ": " + f.Value + "\n")
	}

	return commented.String() + "\n" + editable.String()
}

// Parse extracts field values from an edited buffer. Values are trimmed of
// surrounding whitespace. A segment not shaped "name: value" fails with a
// *catalog.ParseError.
func Parse(text string) (map[string]string, error) {
	var segments []string
	var current *strings.Builder

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, Marker); ok {
			if current != nil {
				segments = append(segments, current.String())
			}
			current = &strings.Builder{}
			current.WriteString(rest)
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) != "" {
				return nil, &catalog.ParseError{Segment: line, Reason: "text outside of any field"}
			}
			continue
		}
		current.WriteString("\n" + line)
	}
	if current != nil {
		segments = append(segments, current.String())
	}

	values := make(map[string]string, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		m := segmentPattern.FindStringSubmatch(segment)
		if m == nil {
			return nil, &catalog.ParseError{Segment: segment, Reason: "expected name: value"}
		}
		name := m[1]
		if _, dup := values[name]; dup {
			return nil, &catalog.ParseError{Segment: segment, Reason: "field appears more than once"}
		}
		values[name] = strings.TrimSpace(m[2])
	}

	return values, nil
}
