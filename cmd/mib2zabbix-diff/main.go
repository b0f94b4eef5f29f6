package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/templatediff"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("mib2zabbix-diff", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	left := fs.String("left", "", "Left template export (json or yaml)")
	right := fs.String("right", "", "Right template export (json or yaml)")
	showAll := fs.Bool("show-all", false, "Show all differences (default shows first 100)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if *left == "" || *right == "" {
		fmt.Fprintln(stderr, "usage: mib2zabbix-diff --left <fileA> --right <fileB>")
		return 2
	}

	result, err := templatediff.CompareFiles(*left, *right)
	if err != nil {
		fmt.Fprintf(stderr, "diff failed: %v\n", err)
		return 1
	}

	if result.Identical() {
		fmt.Fprintf(stdout, "IDENTICAL: %d items\n", result.LeftCount)
		return 0
	}

	fmt.Fprintf(stdout, "DIFF: left=%d right=%d differences=%d\n", result.LeftCount, result.RightCount, len(result.Diffs))
	limit := len(result.Diffs)
	if !*showAll && limit > 100 {
		limit = 100
	}
	for i := 0; i < limit; i++ {
		d := result.Diffs[i]
		fmt.Fprintf(stdout, "- %s [%s]\n", d.Key, d.Kind)
		if d.Left != nil {
			fmt.Fprintf(stdout, "  left : %s\n", templatediff.Describe(d.Left))
		}
		if d.Right != nil {
			fmt.Fprintf(stdout, "  right: %s\n", templatediff.Describe(d.Right))
		}
	}
	if !*showAll && len(result.Diffs) > limit {
		fmt.Fprintf(stdout, "... %d more differences omitted (use --show-all)\n", len(result.Diffs)-limit)
	}
	return 1
}
