package position

import (
	"fmt"
	"strings"
)

// Highlight renders the source line holding pos with a caret under the
// reported column, preceded by up to context lines of leading source.
//
//	 2 | let x = 1
//	 3 | let y = @
//	   |         ^
func Highlight(file *SourceFile, pos Position, context int) string {
	if file == nil || !pos.IsValid() || pos.Line > len(file.Lines) {
		return ""
	}

	width := len(fmt.Sprint(pos.Line))
	var b strings.Builder

	for lineNum := max(1, pos.Line-context); lineNum <= pos.Line; lineNum++ {
		fmt.Fprintf(&b, "%*d | %s\n", width, lineNum, file.GetLine(lineNum))
	}

	b.WriteString(strings.Repeat(" ", width))
	b.WriteString(" | ")
	writeCaret(&b, file.GetLine(pos.Line), pos.Column)
	b.WriteString("\n")

	return b.String()
}

// writeCaret pads up to column, copying tabs so the caret lines up with the
// rendered source line.
func writeCaret(b *strings.Builder, line string, column int) {
	runes := []rune(line)
	for i := 1; i < column; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
}
