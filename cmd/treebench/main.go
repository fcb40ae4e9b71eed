// Command treebench measures insert/find/erase latency for each tree
// engine in this module against a fixed size sweep, comparing them to
// github.com/emirpasic/gods' red-black tree as a baseline balanced
// set. Results are written as CSV, one file per variant.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <avl|splay|cartesian|rb|all>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	resultsDir := "results"
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "treebench: creating results directory: %v\n", err)
		os.Exit(1)
	}

	switch variant := flag.Arg(0); variant {
	case "avl":
		run(resultsDir, "avl.csv", benchmarkAVL)
	case "splay":
		run(resultsDir, "splay.csv", benchmarkSplay)
	case "cartesian":
		run(resultsDir, "cartesian.csv", benchmarkTreap)
	case "rb":
		run(resultsDir, "set.csv", benchmarkRB)
	case "all":
		run(resultsDir, "avl.csv", benchmarkAVL)
		run(resultsDir, "splay.csv", benchmarkSplay)
		run(resultsDir, "cartesian.csv", benchmarkTreap)
		run(resultsDir, "set.csv", benchmarkRB)
	default:
		fmt.Printf("treebench: unknown tree %q; want one of avl, splay, cartesian, rb, all\n", variant)
	}
}

func run(dir, filename string, bench func() []sizeResult) {
	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "treebench: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Fprintf(os.Stderr, "treebench: running %s\n", filename)
	results := bench()

	if err := writeCSV(f, results); err != nil {
		fmt.Fprintf(os.Stderr, "treebench: writing %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "treebench: wrote %s\n", path)
}
