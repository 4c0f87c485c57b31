package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: img2pdf [flags] <directory>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a directory of JPG/PNG images into a single PDF.")
	fmt.Fprintln(w, "A README.md in the directory becomes the preface pages.")
	fmt.Fprintln(w, "The document is written to <parent>/<directory name>.pdf.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  directory    Directory containing the images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>     Output file (*.pdf) or directory")
	fmt.Fprintln(w, "  -c, --config <name>     Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>     Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --margin <f>        Margin in inches (0.25-3.0)")
	fmt.Fprintln(w, "      --dpi <f>           Pixels per inch for native-size images (18-1200)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "      --no-readme         Omit the README.md preface")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet             Only show errors")
	fmt.Fprintln(w, "  -v, --verbose           Show detailed timing")
	fmt.Fprintln(w, "      --version           Show version information")
}
