package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/QtravelPL/duckling/internal/logging"
	"github.com/QtravelPL/duckling/internal/pipeline"
)

var (
	parseDims    string
	parseLocale  string
	parseReftime string
	parseLatent  bool
	parseHTML    bool
	parseTrace   bool
	outJSON      string
	pretty       bool
	noCache      bool
	parseTimeout time.Duration
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse a text and print its entities as JSON",
	Long: `Parse extracts structured entities from a single text and prints
them to stdout as a JSON array. Each entity carries its dimension, the
matched span and a resolved value.

Example:
  duckling parse "two hundred"
  duckling parse "see you on March 3 at 5pm" --dims time
  duckling parse "tomorrow" --reference-time 2013-02-12T04:30:00Z
  duckling parse "in 2 hours" --trace --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Parse flags
	parseCmd.Flags().StringVar(&parseDims, "dims", "", "comma-separated dimensions to extract (default: all)")
	parseCmd.Flags().StringVar(&parseLocale, "locale", "", "rule locale, e.g. en or en_US")
	parseCmd.Flags().StringVar(&parseReftime, "reference-time", "", "reference time as RFC3339 or unix milliseconds (default: now)")
	parseCmd.Flags().BoolVar(&parseLatent, "latent", false, "keep latent candidates in the output")
	parseCmd.Flags().BoolVar(&parseHTML, "html", false, "strip HTML markup before parsing")
	parseCmd.Flags().BoolVar(&parseTrace, "trace", false, "print derivation trees to stderr")
	parseCmd.Flags().DurationVar(&parseTimeout, "timeout", 30*time.Second, "overall parse timeout")

	// Output flags
	parseCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
	parseCmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	parseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
}

func runParse(cmd *cobra.Command, args []string) error {
	text := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()

	// Build configuration from flags
	cfg := loadConfig()
	if parseLocale != "" {
		cfg.Engine.Locale = parseLocale
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if pretty {
		cfg.Output.Pretty = true
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsing: %q\n", text)
		fmt.Fprintf(os.Stderr, "Locale: %s\n", cfg.Engine.Locale)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	// Create pipeline
	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	p.SetLogger(logging.L())

	req := pipeline.Request{
		Text:  text,
		HTML:  parseHTML,
		Trace: parseTrace || cfg.Output.Trace,
	}
	req.Options.WithLatent = parseLatent
	if parseDims != "" {
		targets, err := p.Registry().Seals(splitList(parseDims))
		if err != nil {
			return err
		}
		req.Options.Targets = targets
	}
	reftime, err := pipeline.ParseReferenceTime(parseReftime)
	if err != nil {
		return err
	}
	req.Context.ReferenceTime = reftime

	res, err := p.Parse(ctx, req)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.Pretty)
	if verbose {
		renderer.Summary(os.Stderr, res)
		fmt.Fprintln(os.Stderr)
	}
	if req.Trace {
		if err := pipeline.RenderTrace(os.Stderr, res); err != nil {
			return err
		}
	}

	if outJSON != "" {
		f, err := os.Create(outJSON)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		if err := renderer.WriteJSON(f, res.Entities); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %d entities: %s\n", len(res.Entities), outJSON)
		return nil
	}
	return renderer.WriteJSON(os.Stdout, res.Entities)
}

// splitList splits a comma-separated flag value, dropping empty parts.
func splitList(s string) []string {
	var parts []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
