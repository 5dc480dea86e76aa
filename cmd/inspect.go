package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/signalnine/autograde/internal/inspect"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show what static inspection sees in a Go file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			if strings.HasSuffix(args[0], "_test.go") {
				return printSuiteFacts(src)
			}
			return printFileFacts(src)
		},
	}
}

func printSuiteFacts(src []byte) error {
	if problem := inspect.SuiteProblem(src); problem != "" {
		fmt.Printf("rejected: %s\n", problem)
	}
	facts, err := inspect.TestSuite(src)
	if err != nil {
		return nil
	}
	fmt.Printf("tests: %s\n", strings.Join(facts.Tests, ", "))
	fmt.Printf("assertions: %d\n", facts.Assertions)
	return nil
}

func printFileFacts(src []byte) error {
	facts, err := inspect.File(src)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	fmt.Printf("package %s (%d nodes)\n", facts.Package, facts.Nodes)
	names := make([]string, 0, len(facts.Funcs))
	for name := range facts.Funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := facts.Funcs[name]
		stub := ""
		if f.Stub {
			stub = " [template stub]"
		}
		fmt.Printf("  func %s: %d nodes%s\n", name, f.Nodes, stub)
	}
	if len(facts.Globals) > 0 {
		fmt.Printf("package-level variables: %s\n", strings.Join(facts.Globals, ", "))
	}
	return nil
}
