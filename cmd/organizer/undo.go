package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arigatoexpress/DesktopOrganizer/internal/cli"
	"github.com/arigatoexpress/DesktopOrganizer/internal/common"
	"github.com/arigatoexpress/DesktopOrganizer/internal/config"
	"github.com/arigatoexpress/DesktopOrganizer/internal/mover"
	"github.com/arigatoexpress/DesktopOrganizer/internal/storage"
)

const restoredTableLimit = 20

func undoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo [directory]",
		Short: "Move the last organized batch of files back where they came from",
		Long: `Restore the most recent completed organize run. Files are moved back to
their original locations in reverse order and emptied category folders
are removed. Defaults to ~/Desktop when no directory is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUndo,
	}

	cmd.Flags().StringP("output", "o", "", "output directory (default: <source>/Organized)")

	return cmd
}

func runUndo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sourceDir, err := resolveSource(args)
	if err != nil {
		return err
	}

	outputDir := filepath.Join(sourceDir, cfg.Output.DirName)
	if outputFlag, _ := cmd.Flags().GetString("output"); outputFlag != "" {
		outputDir, err = filepath.Abs(config.ExpandPath(outputFlag))
		if err != nil {
			return fmt.Errorf("invalid output directory: %w", err)
		}
	}

	log := storage.OpenSessionLog(filepath.Join(outputDir, cfg.Output.LogFileName), nil)
	if log.Corrupt() {
		fmt.Println(cli.FormatWarning("Session log was unreadable and has been reset."))
	}

	result, err := mover.Undo(log, nil)
	if errors.Is(err, common.ErrNoSessions) {
		fmt.Println(cli.SubtleStyle.Render("Nothing to undo."))
		return nil
	}
	if err != nil {
		return err
	}

	printRestoredTable(result)
	for _, undoErr := range result.Errors {
		fmt.Println(cli.FormatError(undoErr))
	}

	if result.Success {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored %s.", pluralize(len(result.Restored), "file"))))
	} else {
		fmt.Println(cli.FormatWarning(fmt.Sprintf(
			"Restored %s; %d could not be restored. The session has been cleared.",
			pluralize(len(result.Restored), "file"), len(result.Errors))))
	}
	return nil
}

func printRestoredTable(result mover.UndoResult) {
	if len(result.Restored) == 0 {
		return
	}

	rows := make([][]string, 0, restoredTableLimit)
	for _, r := range result.Restored {
		if len(rows) == restoredTableLimit {
			break
		}
		rows = append(rows, []string{filepath.Base(r.To), filepath.Dir(r.To)})
	}

	fmt.Println(cli.RenderTable(
		[]string{"File", "Restored To"},
		rows,
		[]cli.ColumnAlignment{cli.AlignLeft, cli.AlignLeft},
	))
	if extra := len(result.Restored) - restoredTableLimit; extra > 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("… and %s more", pluralize(extra, "file"))))
	}
}
