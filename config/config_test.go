package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "pool.yaml", `
workers: 4
pin_workers: true
rate_limit:
  per_second: 100
  burst: 10
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.PinWorkers {
		t.Error("PinWorkers = false, want true")
	}
	if cfg.RateLimit == nil {
		t.Fatal("RateLimit = nil, want set")
	}
	if cfg.RateLimit.PerSecond != 100 || cfg.RateLimit.Burst != 10 {
		t.Errorf("RateLimit = %+v, want {100 10}", *cfg.RateLimit)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "pool.json", `{"workers": 2}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.PinWorkers {
		t.Error("PinWorkers = true, want default false")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load succeeded for a missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, "bad.yaml", "workers: [not a number")
	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"valid", Config{Workers: 8}, false},
		{"negative workers", Config{Workers: -1}, true},
		{"zero rate", Config{RateLimit: &RateLimit{PerSecond: 0, Burst: 1}}, true},
		{"zero burst", Config{RateLimit: &RateLimit{PerSecond: 5, Burst: 0}}, true},
		{"valid rate", Config{RateLimit: &RateLimit{PerSecond: 5, Burst: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Config{Workers: 3, PinWorkers: true, RateLimit: &RateLimit{PerSecond: 50, Burst: 5}}
	if got := len(cfg.Options()); got != 3 {
		t.Errorf("Options() returned %d options, want 3", got)
	}

	var zero Config
	if got := len(zero.Options()); got != 0 {
		t.Errorf("Options() on zero config returned %d options, want 0", got)
	}
}
