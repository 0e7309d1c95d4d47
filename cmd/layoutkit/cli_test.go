package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommandTree(t *testing.T) {
	if rootCmd.Use != "layoutkit" {
		t.Errorf("root Use = %q", rootCmd.Use)
	}
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"render", "version"} {
		if !names[want] {
			t.Errorf("missing %q subcommand", want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	src := `page:
  width: 595
  height: 842
margins:
  top: 36
font_size: 10
strict: true
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Page.Width != 595 || cfg.Page.Height != 842 {
		t.Errorf("page = %gx%g", cfg.Page.Width, cfg.Page.Height)
	}
	if cfg.Margins.Top != 36 {
		t.Errorf("margin top = %g", cfg.Margins.Top)
	}
	// absent fields keep their defaults
	if cfg.Margins.Left != 50 {
		t.Errorf("margin left = %g, want default 50", cfg.Margins.Left)
	}
	if cfg.FontSize != 10 || !cfg.Strict {
		t.Errorf("font_size = %g, strict = %v", cfg.FontSize, cfg.Strict)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("page:\n  width: -1\n  height: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected error for non-positive page size")
	}
}

func TestRunRender(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	src := "# Hello\n\nBody text.\n"
	if err := os.WriteFile(input, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.pages")
	renderOut = out
	defer func() { renderOut = ""; renderConfig = ""; renderStrict = false }()

	if err := runRender(input); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "(Hello) Tj") {
		t.Errorf("output missing rendered heading: %q", data)
	}
}

func TestRunRenderStrictMissingImage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(input, []byte("![gone](gone.png)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	renderOut = filepath.Join(dir, "out.pages")
	renderStrict = true
	defer func() { renderOut = ""; renderStrict = false }()

	if err := runRender(input); err == nil {
		t.Error("strict render must fail on a missing image")
	}
}
