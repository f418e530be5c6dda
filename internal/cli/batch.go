package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/QtravelPL/duckling/internal/logging"
	"github.com/QtravelPL/duckling/internal/model"
	"github.com/QtravelPL/duckling/internal/pipeline"
	"github.com/QtravelPL/duckling/internal/worker"
)

var (
	concurrency  int
	batchOutput  string
	batchTimeout time.Duration
	// parseDims, parseLocale, parseReftime, parseLatent and noCache
	// are defined in parse.go and shared here
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Parse multiple texts from a file in parallel",
	Long: `Batch parses many texts concurrently:
- Read texts from the input file (one per line, # comments skipped)
- Parse them in parallel with a configurable worker count
- Write one JSON object per input line (JSONL), in input order

Every line of a batch shares one reference time, resolved when the
command starts, so identical inputs cache and compare cleanly.

Example:
  duckling batch inputs.txt
  duckling batch inputs.txt --concurrency 10 --output entities.jsonl
  duckling batch inputs.txt --dims time,numeral --reference-time 2013-02-12T04:30:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output JSONL path (default: stdout)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from parse command
	batchCmd.Flags().StringVar(&parseDims, "dims", "", "comma-separated dimensions to extract (default: all)")
	batchCmd.Flags().StringVar(&parseLocale, "locale", "", "rule locale, e.g. en or en_US")
	batchCmd.Flags().StringVar(&parseReftime, "reference-time", "", "reference time as RFC3339 or unix milliseconds (default: now)")
	batchCmd.Flags().BoolVar(&parseLatent, "latent", false, "keep latent candidates in the output")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
}

// batchLine is one JSONL output record.
type batchLine struct {
	Text     string         `json:"text"`
	Entities []model.Entity `json:"entities"`
	Error    string         `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Duckling Batch Parsing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	// Build configuration
	cfg := loadConfig()
	if parseLocale != "" {
		cfg.Engine.Locale = parseLocale
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Concurrency.BatchWorkers = concurrency

	// Create pipeline
	p, err := pipeline.New(cfg)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}
	p.SetLogger(logging.L())

	// One reference time for the whole batch
	reftime, err := pipeline.ParseReferenceTime(parseReftime)
	if err != nil {
		return err
	}
	if reftime.IsZero() {
		reftime = time.Now().UTC()
	}

	opts := model.Options{WithLatent: parseLatent}
	if parseDims != "" {
		targets, err := p.Registry().Seals(splitList(parseDims))
		if err != nil {
			return err
		}
		opts.Targets = targets
	}

	parser := &batchParser{
		pipeline: p,
		context:  model.Context{ReferenceTime: reftime},
		options:  opts,
	}

	// Process texts
	fmt.Fprintf(os.Stderr, "⚙️  Reading texts from file...\n")
	processor := worker.NewBatchProcessor(parser, cfg.Concurrency.BatchWorkers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d texts\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "⚙️  Parsing with %d workers...\n", cfg.Concurrency.BatchWorkers)
	fmt.Fprintf(os.Stderr, "\n")

	out := os.Stdout
	if batchOutput != "" {
		f, err := os.Create(batchOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)

	successCount := 0
	failureCount := 0

	for _, result := range results {
		line := batchLine{Text: result.Text, Entities: result.Entities}
		if result.Error != nil {
			failureCount++
			line.Error = result.Error.Error()
			fmt.Fprintf(os.Stderr, "✗ %q: %v\n", result.Text, result.Error)
		} else {
			successCount++
			fmt.Fprintf(os.Stderr, "✓ %q: %d entities\n", result.Text, len(result.Entities))
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d texts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	if batchOutput != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutput)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// batchParser adapts the pipeline to the worker pool's parser
// interface, pinning one context and option set for every line.
type batchParser struct {
	pipeline *pipeline.Pipeline
	context  model.Context
	options  model.Options
}

func (b *batchParser) ParseText(ctx context.Context, text string) ([]model.Entity, error) {
	res, err := b.pipeline.Parse(ctx, pipeline.Request{
		Text:    text,
		Context: b.context,
		Options: b.options,
	})
	if err != nil {
		return nil, err
	}
	return res.Entities, nil
}
