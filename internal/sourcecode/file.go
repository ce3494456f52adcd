package sourcecode

import (
	"fmt"
	"io"
	"strings"
)

// A File associates a source name with the runes of the code, it provides
// helper methods to map spans to line/column positions and to extract the
// line a diagnostic points at.
type File struct {
	name  string
	runes []rune
}

func NewFile(name string, code string) *File {
	return &File{
		name:  name,
		runes: []rune(code),
	}
}

func (f *File) Name() string {
	return f.name
}

// result should not be modified.
func (f *File) Runes() []rune {
	return f.runes
}

func (f *File) GetSpanLineColumn(span NodeSpan) (int32, int32) {
	line := int32(1)
	col := int32(1)
	i := 0

	for i < int(span.Start) && i < len(f.runes) {
		if f.runes[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}

		i++
	}

	return line, col
}

func (f *File) GetSourcePosition(span NodeSpan) PositionRange {
	line, col := f.GetSpanLineColumn(span)

	return PositionRange{
		SourceName:  f.name,
		StartLine:   line,
		StartColumn: col,
		Span:        span,
	}
}

// GetLineText returns the text of a 1-indexed line, without the trailing
// line feed.
func (f *File) GetLineText(line int32) string {
	var b strings.Builder
	current := int32(1)

	for _, r := range f.runes {
		if r == '\n' {
			if current == line {
				break
			}
			current++
			continue
		}
		if current == line {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func (f *File) FormatNodeSpanLocation(w io.Writer, span NodeSpan) (int, error) {
	line, col := f.GetSpanLineColumn(span)
	return fmt.Fprintf(w, "%s:%d:%d:", f.name, line, col)
}
