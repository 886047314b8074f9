package tools

import (
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.Bold)
	hunkColor   = color.New(color.FgCyan)
	addColor    = color.New(color.FgGreen)
	deleteColor = color.New(color.FgRed)
)

// ColorizeDiff colors a unified or normal diff for terminal output.
func ColorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")

	for i, l := range lines {
		switch {
		case strings.HasPrefix(l, "+++"), strings.HasPrefix(l, "---"):
			lines[i] = headerColor.Sprint(l)
		case strings.HasPrefix(l, "@@"):
			lines[i] = hunkColor.Sprint(l)
		case strings.HasPrefix(l, "+"), strings.HasPrefix(l, ">"):
			lines[i] = addColor.Sprint(l)
		case strings.HasPrefix(l, "-"), strings.HasPrefix(l, "<"):
			lines[i] = deleteColor.Sprint(l)
		}
	}

	return strings.Join(lines, "\n")
}
