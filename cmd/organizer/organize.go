package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arigatoexpress/DesktopOrganizer/internal/cli"
	"github.com/arigatoexpress/DesktopOrganizer/internal/common"
	"github.com/arigatoexpress/DesktopOrganizer/internal/config"
	"github.com/arigatoexpress/DesktopOrganizer/internal/engine"
	"github.com/arigatoexpress/DesktopOrganizer/internal/llm"
	"github.com/arigatoexpress/DesktopOrganizer/internal/model"
	"github.com/arigatoexpress/DesktopOrganizer/internal/organizer"
	"github.com/arigatoexpress/DesktopOrganizer/internal/registry"
	"github.com/arigatoexpress/DesktopOrganizer/internal/scanner"
)

const planTableLimit = 20

func organizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize [directory]",
		Short: "Sort a directory's files into categorized folders",
		Long: `Scan a directory, classify each file, and move it into a category
folder under the output directory. Defaults to ~/Desktop when no
directory is given. Every run is journaled so it can be undone.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runOrganize,
	}

	cmd.Flags().StringP("output", "o", "", "output directory (default: <source>/Organized)")
	cmd.Flags().Bool("dry-run", false, "show the plan without moving anything")
	cmd.Flags().Bool("fast", false, "skip the model backend and classify by rules only")
	cmd.Flags().Bool("no-recursive", false, "only scan the top level of the directory")

	return cmd
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sourceDir, err := resolveSource(args)
	if err != nil {
		return err
	}

	outputFlag, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	fast, _ := cmd.Flags().GetBool("fast")
	noRecursive, _ := cmd.Flags().GetBool("no-recursive")

	outputDir := filepath.Join(sourceDir, cfg.Output.DirName)
	if outputFlag != "" {
		outputDir, err = filepath.Abs(config.ExpandPath(outputFlag))
		if err != nil {
			return fmt.Errorf("invalid output directory: %w", err)
		}
	}

	o := buildOrganizer(ctx, cfg, fast)

	fmt.Println(cli.FormatTitle("Organizing " + sourceDir))
	printBackendBanner(o.Classifier(), cfg, fast)
	if dryRun {
		fmt.Println(cli.WarningStyle.Render("Dry run: nothing will be moved."))
	}

	records, err := o.Discover(ctx, sourceDir, outputDir, !noRecursive, nil)
	if err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			return errors.New(userErr.UserMessage)
		}
		return err
	}
	if len(records) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No files to organize."))
		return nil
	}
	fmt.Printf("Found %s to organize.\n\n", pluralize(len(records), "file"))

	bar := cli.NewProgressBar(os.Stderr, len(records), "Classifying files...")
	results := o.ClassifyAll(ctx, records, func(_, _ int, _ model.ClassificationResult) {
		cli.Advance(bar)
	})

	if dryRun {
		printPlanTable(outputDir, results)
	}

	summary, err := o.Execute(ctx, results, sourceDir, outputDir, dryRun, nil)
	if summary.LogCorrupt {
		fmt.Println(cli.FormatWarning("Session log was unreadable and has been reset; earlier runs can no longer be undone."))
	}
	if err != nil {
		fmt.Println(cli.FormatError(fmt.Sprintf("Run stopped early: %v", err)))
	}

	printRunSummary(summary, results, dryRun)
	return nil
}

// buildOrganizer wires the scanner, classifier, and orchestrator from config.
// A backend that cannot be constructed only costs the model tier.
func buildOrganizer(ctx context.Context, cfg config.Config, fast bool) *organizer.Organizer {
	var client llm.Client
	if !fast {
		c, err := llm.NewClient(llm.Config{
			Provider:    cfg.Backend.Provider,
			Model:       cfg.Backend.Model,
			Host:        cfg.Backend.Host,
			APIKey:      cfg.Backend.APIKey,
			MaxTokens:   cfg.Backend.MaxTokens,
			Temperature: cfg.Backend.Temperature,
			Timeout:     cfg.Backend.Timeout,
		})
		if err != nil {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("Backend disabled: %v", err)))
		} else {
			client = c
		}
	}

	sc := scanner.New(cfg.Scanner, nil)
	cls := engine.New(ctx, client, registry.NewDefault(), engine.Config{
		MaxContentChars: cfg.Backend.MaxContentChars,
		DisableBackend:  fast,
	}, nil)

	return organizer.New(cfg, sc, cls, nil)
}

func resolveSource(args []string) (string, error) {
	source := "~/Desktop"
	if len(args) > 0 {
		source = args[0]
	}

	abs, err := filepath.Abs(config.ExpandPath(source))
	if err != nil {
		return "", fmt.Errorf("invalid directory %q: %w", source, err)
	}
	return abs, nil
}

func printBackendBanner(cls *engine.Classifier, cfg config.Config, fast bool) {
	switch {
	case fast:
		fmt.Println(cli.SubtleStyle.Render("Fast mode: classifying by extension and keyword rules only."))
	case cls.BackendState() == engine.ProbeAvailable:
		fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Using %s model %q.", cfg.Backend.Provider, cfg.Backend.Model)))
	default:
		fmt.Println(cli.FormatWarning("Model backend unreachable; classifying by extension and keyword rules only."))
	}
}

func printPlanTable(outputDir string, results []model.ClassificationResult) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if len(rows) == planTableLimit {
			break
		}
		dest, err := filepath.Rel(outputDir, organizer.PlanDestination(outputDir, r))
		if err != nil {
			dest = organizer.PlanDestination(outputDir, r)
		}
		rows = append(rows, []string{
			r.Record.Name,
			r.Category.Name,
			string(r.Method),
			strconv.FormatFloat(r.Confidence, 'f', 2, 64),
			dest,
		})
	}

	fmt.Println(cli.RenderTable(
		[]string{"File", "Category", "Method", "Confidence", "Destination"},
		rows,
		[]cli.ColumnAlignment{cli.AlignLeft, cli.AlignLeft, cli.AlignLeft, cli.AlignRight, cli.AlignLeft},
	))
	if extra := len(results) - planTableLimit; extra > 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("… and %s more", pluralize(extra, "file"))))
	}
}

func printRunSummary(summary organizer.ExecSummary, results []model.ClassificationResult, dryRun bool) {
	tally := organizer.MethodTally(results)

	rows := [][]string{}
	for _, method := range []model.Method{model.MethodModel, model.MethodExtension, model.MethodKeyword, model.MethodFallback} {
		if tally[method] == 0 {
			continue
		}
		rows = append(rows, []string{string(method), strconv.Itoa(tally[method])})
	}

	fmt.Println()
	fmt.Println(cli.RenderTable(
		[]string{"Method", "Files"},
		rows,
		[]cli.ColumnAlignment{cli.AlignLeft, cli.AlignRight},
	))

	verb := "Moved"
	if dryRun {
		verb = "Would move"
	}
	msg := fmt.Sprintf("%s %s", verb, pluralize(len(summary.Operations), "file"))
	if summary.Skipped > 0 {
		msg += fmt.Sprintf(" (%d skipped)", summary.Skipped)
	}
	fmt.Println(cli.FormatSuccess(msg))
	if !dryRun && len(summary.Operations) > 0 {
		fmt.Println(cli.SubtleStyle.Render("Run 'organizer undo' to put everything back."))
	}
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
