package analysis

import (
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

var (
	errorLabelStyle   = termenv.String("error").Foreground(termenv.ANSIRed).Bold()
	warningLabelStyle = termenv.String("warning").Foreground(termenv.ANSIYellow).Bold()
)

// FormatError renders a one-line summary plus, when the source line is
// available, the offending line with a caret under the column.
func FormatError(sourceName string, err SemanticError, styled bool) string {
	label := "error"
	if styled {
		label = errorLabelStyle.String()
	}
	return formatDiagnostic(sourceName, label, string(err.Kind), err.Message, err.Line, err.Column, err.Context)
}

func FormatWarning(sourceName string, warning SemanticWarning, styled bool) string {
	label := "warning"
	if styled {
		label = warningLabelStyle.String()
	}
	return formatDiagnostic(sourceName, label, string(warning.Kind), warning.Message, warning.Line, warning.Column, warning.Context)
}

func formatDiagnostic(sourceName, label, kind, msg string, line, column int32, context string) string {
	var b strings.Builder

	b.WriteString(sourceName)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(line)))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(int(column)))
	b.WriteString(": ")
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(kind)
	b.WriteString(": ")
	b.WriteString(msg)

	if context != "" {
		b.WriteByte('\n')
		b.WriteString(context)
		b.WriteByte('\n')
		//echo tabs from the context line so the caret lines up however wide
		//the terminal renders them
		runes := []rune(context)
		for i := int32(1); i < column; i++ {
			if int(i) <= len(runes) && runes[i-1] == '\t' {
				b.WriteByte('\t')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('^')
	}

	return b.String()
}
