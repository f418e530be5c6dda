package worker

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/QtravelPL/duckling/internal/model"
)

// mockParser returns one fake entity per input. Texts listed in fail
// error out; delays lets a test control completion order.
type mockParser struct {
	fail   map[string]bool
	delays map[string]time.Duration
}

func (m *mockParser) ParseText(ctx context.Context, text string) ([]model.Entity, error) {
	if d := m.delays[text]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.fail[text] {
		return nil, errors.New("parse error")
	}
	return []model.Entity{{
		Dim:   "numeral",
		Body:  text,
		Value: model.RawValue(`{"value":1}`),
		End:   len(text),
	}}, nil
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", name)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestBatchProcessor_ProcessTexts(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{}, 2)
	texts := []string{"ten dollars", "3 miles", "tomorrow"}

	results := processor.ProcessTexts(context.Background(), texts)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %q: %v", res.Text, res.Error)
		}
		if res.Index != i || res.Text != texts[i] {
			t.Errorf("result %d is %q at index %d, want %q", i, res.Text, res.Index, texts[i])
		}
		if len(res.Entities) != 1 {
			t.Errorf("expected an entity for %q", res.Text)
		}
	}
}

func TestBatchProcessor_OrderSurvivesSlowInputs(t *testing.T) {
	// The first input finishes last; output order must not care.
	processor := NewBatchProcessor(&mockParser{
		delays: map[string]time.Duration{"slow": 60 * time.Millisecond},
	}, 3)
	texts := []string{"slow", "quick", "quicker"}

	results := processor.ProcessTexts(context.Background(), texts)

	for i, res := range results {
		if res.Text != texts[i] {
			t.Errorf("result %d = %q, want %q", i, res.Text, texts[i])
		}
	}
}

func TestBatchProcessor_ErrorDoesNotPoisonBatch(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{
		fail: map[string]bool{"bad": true},
	}, 2)

	results := processor.ProcessTexts(context.Background(), []string{"ok", "bad", "fine"})

	if results[0].Error != nil || results[2].Error != nil {
		t.Error("healthy inputs must not inherit a neighbor's failure")
	}
	if results[1].Error == nil {
		t.Error("expected an error for the bad input")
	}
	if results[1].Entities != nil {
		t.Error("expected no entities on error")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{}, 2)
	results := processor.ProcessTexts(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_LargeBatchKeepsOrder(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{}, 4)

	texts := make([]string, 100)
	for i := range texts {
		texts[i] = "input " + strconv.Itoa(i)
	}
	results := processor.ProcessTexts(context.Background(), texts)

	if len(results) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(results))
	}
	for i, res := range results {
		if res.Text != texts[i] {
			t.Fatalf("result %d = %q, want %q", i, res.Text, texts[i])
		}
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	processor := NewBatchProcessor(&mockParser{}, 2)
	results := processor.ProcessTexts(ctx, []string{"a", "b", "c"})

	if len(results) != 3 {
		t.Fatalf("expected a slot per input, got %d", len(results))
	}
	for i, res := range results {
		if res == nil {
			t.Fatalf("result %d is nil", i)
		}
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeTempFile(t, "batch_inputs", "ten dollars\ntomorrow\n# comment\n\n3 miles\n")

	processor := NewBatchProcessor(&mockParser{}, 2)
	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&mockParser{}, 2)
	if _, err := processor.ProcessFile(context.Background(), "no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestReadInputsFromFile(t *testing.T) {
	path := writeTempFile(t, "inputs", "ten dollars\n# comment\ntomorrow\n   \n3 miles   ")

	texts, err := ReadInputsFromFile(path)
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}

	expected := []string{"ten dollars", "tomorrow", "3 miles"}
	if len(texts) != len(expected) {
		t.Fatalf("expected %d inputs, got %d", len(expected), len(texts))
	}
	for i, text := range texts {
		if text != expected[i] {
			t.Errorf("expected %q at index %d, got %q", expected[i], i, text)
		}
	}
}

func TestReadInputsFromFile_Deduplication(t *testing.T) {
	path := writeTempFile(t, "inputs_dedup", "tomorrow\ntomorrow\n")

	texts, err := ReadInputsFromFile(path)
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}
	if len(texts) != 1 {
		t.Errorf("expected 1 input after deduplication, got %d", len(texts))
	}
}
