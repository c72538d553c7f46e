package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	udgerua "github.com/praetorian-inc/udgerua"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

var (
	parseFormat      string
	parseLRUCapacity int
)

// styles holds color formatters for human-readable parse output.
type styles struct {
	label *color.Color
	value *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		label: color.New(color.Bold, color.FgHiBlue),
		value: color.New(color.FgHiWhite),
	}
	if !enabled {
		s.label.DisableColor()
		s.value.DisableColor()
	}
	return s
}

var parseCmd = &cobra.Command{
	Use:   "parse [user-agent-string]",
	Short: "Classify a single User-Agent string",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFormat, "format", "human", "Output format: human, json")
	parseCmd.Flags().IntVar(&parseLRUCapacity, "lru-capacity", 4096, "Per-context LRU cache capacity")
}

func runParse(cmd *cobra.Command, args []string) error {
	engine, err := udgerua.New(catalogueDBPath, parseLRUCapacity)
	if err != nil {
		return fmt.Errorf("loading catalogue: %w", err)
	}
	defer engine.Close()

	ctx, err := engine.NewContext()
	if err != nil {
		return fmt.Errorf("allocating parse context: %w", err)
	}
	defer ctx.Close()

	info, err := engine.Parse(args[0], ctx)
	if err != nil {
		return fmt.Errorf("parsing user agent: %w", err)
	}

	out := cmd.OutOrStdout()
	if parseFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return printHuman(out, info)
}

func printHuman(out io.Writer, info *uainfo.Info) error {
	enabled := !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	s := newStyles(enabled)

	rows := [][2]string{
		{"UA family", info.UaFamily},
		{"UA version", info.UaVersion},
		{"Engine", info.UaEngine},
		{"OS", info.Os},
		{"OS family", info.OsFamily},
		{"Device class", info.DeviceClass},
		{"Device brand", info.DeviceBrand},
		{"Device marketname", info.DeviceMarketname},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%s %s\n", s.label.Sprintf("%-20s", r[0]+":"), s.value.Sprint(r[1]))
	}
	return nil
}
