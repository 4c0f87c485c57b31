package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a YAML config fixture and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "img2pdf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Loading and Parsing
// ---------------------------------------------------------------------------

func TestLoadConfig_FullFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `page:
  size: a4
  margin: 1.0
  dpi: 150
output:
  dir: /srv/pdf
readme:
  skip: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Page.Size != "a4" {
		t.Errorf("Page.Size = %q, want \"a4\"", cfg.Page.Size)
	}
	if cfg.Page.Margin != 1.0 {
		t.Errorf("Page.Margin = %v, want 1.0", cfg.Page.Margin)
	}
	if cfg.Page.DPI != 150 {
		t.Errorf("Page.DPI = %v, want 150", cfg.Page.DPI)
	}
	if cfg.Output.Dir != "/srv/pdf" {
		t.Errorf("Output.Dir = %q", cfg.Output.Dir)
	}
	if !cfg.Readme.Skip {
		t.Error("Readme.Skip = false, want true")
	}
}

func TestLoadConfig_PartialFileKeepsZeroValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "page:\n  size: legal\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Page.Size != "legal" {
		t.Errorf("Page.Size = %q", cfg.Page.Size)
	}
	if cfg.Page.Margin != 0 || cfg.Page.DPI != 0 {
		t.Errorf("unset geometry not zero: %+v", cfg.Page)
	}
	if cfg.Readme.Skip {
		t.Error("Readme.Skip = true, want false")
	}
}

func TestLoadConfig_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "empty name",
			setup:   func(t *testing.T) string { return "" },
			wantErr: ErrEmptyConfigName,
		},
		{
			name: "missing path",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.yaml")
			},
			wantErr: ErrConfigNotFound,
		},
		{
			name: "unknown field rejected",
			setup: func(t *testing.T) string {
				return writeConfig(t, "page:\n  sizes: a4\n")
			},
			wantErr: ErrConfigParse,
		},
		{
			name: "malformed yaml",
			setup: func(t *testing.T) string {
				return writeConfig(t, "page: [\n")
			},
			wantErr: ErrConfigParse,
		},
		{
			name: "invalid page size",
			setup: func(t *testing.T) string {
				return writeConfig(t, "page:\n  size: tabloid\n")
			},
			wantErr: ErrConfigParse,
		},
		{
			name: "negative margin",
			setup: func(t *testing.T) string {
				return writeConfig(t, "page:\n  margin: -1\n")
			},
			wantErr: ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadConfig(tt.setup(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Schema Constraints
// ---------------------------------------------------------------------------

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero config", Config{}, false},
		{"letter", Config{Page: PageConfig{Size: "letter"}}, false},
		{"case-insensitive size", Config{Page: PageConfig{Size: "A4"}}, false},
		{"legal with geometry", Config{Page: PageConfig{Size: "legal", Margin: 0.5, DPI: 72}}, false},
		{"bad size", Config{Page: PageConfig{Size: "tabloid"}}, true},
		{"negative margin", Config{Page: PageConfig{Margin: -0.1}}, true},
		{"negative dpi", Config{Page: PageConfig{DPI: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Page.Size != "" || cfg.Page.Margin != 0 || cfg.Page.DPI != 0 {
		t.Errorf("DefaultConfig page not neutral: %+v", cfg.Page)
	}
	if cfg.Readme.Skip {
		t.Error("DefaultConfig skips the preface")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestResolveConfigPath_NotFoundListsCandidates(t *testing.T) {
	t.Parallel()

	_, err := resolveConfigPath("definitely-not-a-real-config-name")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("resolveConfigPath() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), ".yaml") {
		t.Errorf("error does not list tried paths: %v", err)
	}
}
