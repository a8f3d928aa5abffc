package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/nyanyapushkina/log-analysis-bot/internal/filter"
	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
	"github.com/nyanyapushkina/log-analysis-bot/internal/output"
	"github.com/nyanyapushkina/log-analysis-bot/internal/report"
	"github.com/nyanyapushkina/log-analysis-bot/internal/rules"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Classify local log files without any transport",
	Long: `Classify one or more local log files (or glob patterns) and print
a grouped report per file.

Examples:
  logbot analyze app.log
  logbot analyze "logs/**/*.log"
  logbot analyze app.log --disable AUTH --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&disableCats, "disable", "", "categories to hide (comma-separated: ERROR,WARNING,AUTH)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	set, err := rules.Load(cfg.Rules.File)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}

	filters := filter.New()
	if disableCats != "" {
		for _, name := range strings.Split(disableCats, ",") {
			cat := model.Category(strings.ToUpper(strings.TrimSpace(name)))
			if _, err := filters.Toggle(cat); err != nil {
				return err
			}
		}
	}

	var renderer output.Renderer
	switch strings.ToLower(outputFmt) {
	case "json":
		renderer = output.NewJSONRenderer()
	default:
		renderer = output.NewTextRenderer()
	}

	var paths []string
	for _, pattern := range args {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matched the given patterns: %v", args)
	}

	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		doc := model.NewDocument("", path, string(raw), time.Now())
		rep := report.Build(doc, set, filters)

		if len(paths) > 1 {
			fmt.Printf("── %s ──\n", path)
		}
		if err := renderer.Render(rep); err != nil {
			return err
		}
	}
	return nil
}
