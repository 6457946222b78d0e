package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rocforge/go-rocdl/pkg/ir"
	"github.com/rocforge/go-rocdl/pkg/syntax"
	"github.com/rocforge/go-rocdl/pkg/util/source"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag reads an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString reads an expected flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// ReadKernelFile parses a kernel module file, reporting any syntax errors
// against the enclosing source lines.
func ReadKernelFile(filename string) (*ir.Module, *source.Map[ir.Instruction]) {
	srcfiles, err := source.ReadFiles(filename)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	module, srcmap, errs := syntax.ParseSourceFile(&srcfiles[0])
	// Check for errors
	if len(errs) != 0 {
		// Report errors
		for _, err := range errs {
			printSyntaxError(&err)
		}
		// Fail
		os.Exit(2)
	}
	// Done
	return module, srcmap
}

// Print errors arising during lowering, highlighting those which map back to a
// line of the original source.
func printErrors(errs []error) {
	for _, err := range errs {
		if serr, ok := err.(*source.SyntaxError); ok {
			printSyntaxError(serr)
		} else {
			fmt.Println(err)
		}
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(err *source.SyntaxError) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Clip line to available width
	width := max(termWidth(), lineOffset+1)
	text := line.String()
	//
	if len(text) > width {
		text = text[:width]
	}
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length(), width-lineOffset)
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line
	fmt.Println(text)
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Println(strings.Repeat("^", length))
}

// Determine the width of the enclosing terminal, falling back to a sensible
// default when stdout is not a terminal.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	return width
}
