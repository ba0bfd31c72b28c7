package stack

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

func printGreen(w io.Writer, format string, args ...any) {
	green.Fprintf(w, format+"\n", args...)
}

func printRed(w io.Writer, format string, args ...any) {
	red.Fprintf(w, format+"\n", args...)
}

func printSection(w io.Writer, title string) {
	printGreen(w, "%s", title)
	printGreen(w, "%s", strings.Repeat("-", 59))
}

func renderYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return enc.Close()
}
