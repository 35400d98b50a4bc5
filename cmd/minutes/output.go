package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"minutes/internal/formats"
)

const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// isTerminal reports whether writer is an interactive terminal. Piped output
// gets plain tab-separated lines instead of a drawn table.
func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatKind(d formats.DisplayRecord) string {
	switch {
	case d.Customized:
		return "built-in (edited)"
	case d.Builtin:
		return "built-in"
	default:
		return "custom"
	}
}

func selectedMarker(selected bool) string {
	if selected {
		return "*"
	}
	return ""
}

func renderFormatList(out io.Writer, list []formats.DisplayRecord) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No formats match")
		return
	}
	if !isTerminal(out) {
		for _, d := range list {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", selectedMarker(d.Selected), d.ID, d.Title, formatKind(d))
		}
		return
	}
	rows := make([][]string, 0, len(list))
	for _, d := range list {
		rows = append(rows, []string{selectedMarker(d.Selected), d.ID, d.Title, formatKind(d)})
	}
	fmt.Fprintln(out, renderFormatTable(rows))
}

func renderFormat(out io.Writer, d formats.DisplayRecord) {
	title := d.Title
	if isTerminal(out) {
		title = ansiBold + title + ansiReset
	}
	fmt.Fprintln(out, title)
	fmt.Fprintf(out, "ID:       %s\n", d.ID)
	fmt.Fprintf(out, "Kind:     %s\n", formatKind(d))
	fmt.Fprintf(out, "Selected: %s\n", yesNo(d.Selected))
	if template := strings.TrimRight(d.Template, "\n"); template != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, template)
	}
}
