package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	udgerua "github.com/praetorian-inc/udgerua"
)

var benchLRUCapacity int

var benchCmd = &cobra.Command{
	Use:   "bench [file]",
	Short: "Parse newline-delimited User-Agent strings from a file and report throughput",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchLRUCapacity, "lru-capacity", 4096, "Per-context LRU cache capacity")
}

func runBench(cmd *cobra.Command, args []string) error {
	engine, err := udgerua.New(catalogueDBPath, benchLRUCapacity)
	if err != nil {
		return fmt.Errorf("loading catalogue: %w", err)
	}
	defer engine.Close()

	ctx, err := engine.NewContext()
	if err != nil {
		return fmt.Errorf("allocating parse context: %w", err)
	}
	defer ctx.Close()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	start := time.Now()
	count := 0
	for scanner.Scan() {
		ua := scanner.Text()
		if ua == "" {
			continue
		}
		if _, err := engine.Parse(ua, ctx); err != nil {
			return fmt.Errorf("parsing %q: %w", ua, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "parsed %d user agents in %s (%.0f/sec)\n", count, elapsed, float64(count)/elapsed.Seconds())
	return nil
}
