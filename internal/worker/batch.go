package worker

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/QtravelPL/duckling/internal/model"
)

// Parser parses one input into its entities.
type Parser interface {
	ParseText(ctx context.Context, text string) ([]model.Entity, error)
}

// ParseJob is one input line with its position in the batch.
type ParseJob struct {
	Index  int
	Text   string
	Parser Parser
}

// Execute parses the job's text.
func (j *ParseJob) Execute(ctx context.Context) Result {
	entities, err := j.Parser.ParseText(ctx, j.Text)
	if err != nil {
		return &ParseResult{Index: j.Index, Text: j.Text, Error: err}
	}
	return &ParseResult{Index: j.Index, Text: j.Text, Entities: entities}
}

// ParseResult is the outcome of parsing one input.
type ParseResult struct {
	Index    int
	Text     string
	Entities []model.Entity
	Error    error
}

// GetError returns the parse error, if any.
func (r *ParseResult) GetError() error {
	return r.Error
}

// BatchProcessor parses many inputs concurrently.
type BatchProcessor struct {
	parser      Parser
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(parser Parser, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		parser:      parser,
		concurrency: concurrency,
	}
}

// ProcessTexts parses the inputs concurrently. Results come back in
// input order no matter which worker finished first. Inputs lost to
// cancellation carry the context error.
func (b *BatchProcessor) ProcessTexts(ctx context.Context, texts []string) []*ParseResult {
	if len(texts) == 0 {
		return []*ParseResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()
	go func() {
		for i, text := range texts {
			pool.Submit(&ParseJob{Index: i, Text: text, Parser: b.parser})
		}
		pool.Done()
	}()

	ordered := make([]*ParseResult, len(texts))
	for res := range pool.Results() {
		pr := res.(*ParseResult)
		ordered[pr.Index] = pr
	}
	for i, r := range ordered {
		if r == nil {
			ordered[i] = &ParseResult{Index: i, Text: texts[i], Error: ctx.Err()}
		}
	}
	return ordered
}

// ProcessFile reads inputs from a file and parses them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ParseResult, error) {
	texts, err := ReadInputsFromFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read inputs")
	}
	return b.ProcessTexts(ctx, texts), nil
}

// ReadInputsFromFile reads parse inputs, one per line. Blank lines and
// # comments are skipped and repeated lines parse once.
func ReadInputsFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer func() { _ = file.Close() }()

	var texts []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan file")
	}
	return texts, nil
}
