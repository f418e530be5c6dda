package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		json    bool
	}{
		{name: "console", verbose: false, json: false},
		{name: "console verbose", verbose: true, json: false},
		{name: "json", verbose: false, json: true},
		{name: "json verbose", verbose: true, json: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log = zap.NewNop().Sugar()

			if err := Initialize(tt.verbose, tt.json); err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if L() == nil {
				t.Fatal("Initialize() did not set the global logger")
			}
			L().Debugw("probe", "verbose", tt.verbose)
			Sync()
		})
	}
}

func TestL_SafeBeforeInitialize(t *testing.T) {
	log = zap.NewNop().Sugar()

	// Must not panic.
	L().Infow("before initialize", "key", "value")
	Sync()
}
