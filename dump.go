package extents

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// dumpPalette maps structural roles to console colors.
var dumpPalette = map[string]*color.Color{
	"inner":  color.New(color.FgCyan),
	"leaf":   color.New(color.FgBlue),
	"extent": color.New(color.FgYellow),
	"length": color.New(color.FgGreen),
}

// Dump writes an indented node-per-line rendering of the extent tree to w,
// colorized for console output. Inner nodes show their cached subtree
// lengths, leaves list their extents.
//
// Output lines are clipped to the terminal width when stdout is a terminal.
func (f *File) Dump(w io.Writer) {
	width := 65
	if term.IsTerminal(0) {
		if cols, _, err := term.GetSize(0); err == nil && cols > 10 {
			width = cols
		}
	}
	fmt.Fprintf(w, "%s, %s\n",
		dumpPalette["inner"].Sprintf("file %q", f.name),
		dumpPalette["length"].Sprintf("%d bytes", f.size))
	f.dumpNode(f.root, 0, width, w)
}

func (f *File) dumpNode(n *node, depth, width int, w io.Writer) {
	indent := strings.Repeat("  ", depth)
	line := indent
	if n.isLeaf() {
		line += dumpPalette["leaf"].Sprint("leaf")
		for i := 0; i < n.size; i++ {
			line += " " + dumpPalette["extent"].Sprint(n.keys[i].String())
		}
	} else {
		line += dumpPalette["inner"].Sprint("node")
		for i := 0; i < n.size; i++ {
			line += " " + dumpPalette["length"].Sprintf("(%d)", n.childLengths[i])
			line += " " + dumpPalette["extent"].Sprint(n.keys[i].String())
		}
		line += " " + dumpPalette["length"].Sprintf("(%d)", n.childLengths[n.size])
	}
	fmt.Fprintln(w, clip(line, width))
	if !n.isLeaf() {
		for i := 0; i <= n.size; i++ {
			f.dumpNode(n.children[i], depth+1, width, w)
		}
	}
}

// clip cuts a line down to width characters, not counting color escapes.
func clip(line string, width int) string {
	visible := 0
	inEscape := false
	for i, r := range line {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			visible++
			if visible > width {
				return line[:i] + "…"
			}
		}
	}
	return line
}
