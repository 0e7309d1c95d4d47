package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wudi/layoutkit/layout"
	"github.com/wudi/layoutkit/recovery"
	"github.com/wudi/layoutkit/shape"
)

var (
	renderOut    string
	renderConfig string
	renderStrict bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a markdown or HTML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(args[0])
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "", "output file (default: input name with .pages extension)")
	renderCmd.Flags().StringVarP(&renderConfig, "config", "c", "", "YAML config file")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "abort on the first content failure instead of rendering placeholders")
}

func runRender(input string) error {
	cfg := DefaultConfig()
	if renderConfig != "" {
		var err error
		cfg, err = LoadConfig(renderConfig)
		if err != nil {
			return err
		}
	}
	if renderStrict {
		cfg.Strict = true
	}

	source, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(input)
	}
	var strategy recovery.Strategy = recovery.NewLenientStrategy()
	if cfg.Strict {
		strategy = recovery.NewStrictStrategy()
	}
	pass := shape.NewPass(
		shape.WithBaseDir(baseDir),
		shape.WithStrategy(strategy),
	)
	defer pass.Close()

	engine := layout.NewEngine(
		layout.WithPass(pass),
		layout.WithPageSize(cfg.Page.Width, cfg.Page.Height),
		layout.WithMargins(layout.Margins{
			Top:    cfg.Margins.Top,
			Bottom: cfg.Margins.Bottom,
			Left:   cfg.Margins.Left,
			Right:  cfg.Margins.Right,
		}),
		layout.WithDefaultFontSize(cfg.FontSize),
	)

	switch strings.ToLower(filepath.Ext(input)) {
	case ".html", ".htm":
		err = engine.RenderHTML(string(source))
	default:
		err = engine.RenderMarkdown(string(source))
	}
	if err != nil {
		return err
	}

	out := renderOut
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".pages"
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := engine.Document().WriteTo(f); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d page(s) to %s\n", len(engine.Document().Pages), out)
	return nil
}
