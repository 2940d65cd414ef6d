package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arigatoexpress/DesktopOrganizer/internal/cli"
	"github.com/arigatoexpress/DesktopOrganizer/internal/registry"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories files are sorted into",
		RunE:  runCategories,
	}

	cmd.Flags().Bool("verbose", false, "include extension and keyword rules")

	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	reg := registry.NewDefault()

	headers := []string{"ID", "Name", "Folder", "Description"}
	if verbose {
		headers = append(headers, "Extensions", "Keywords")
	}

	rows := make([][]string, 0, reg.Len())
	for _, cat := range reg.All() {
		row := []string{cat.ID, cat.Name, cat.Path, cat.Description}
		if verbose {
			row = append(row,
				strings.Join(cat.Extensions, " "),
				strings.Join(cat.Keywords, " "))
		}
		rows = append(rows, row)
	}

	aligns := make([]cli.ColumnAlignment, len(headers))
	fmt.Println(cli.FormatTitle("Categories"))
	fmt.Println(cli.RenderTable(headers, rows, aligns))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d categories; unmatched files land in %q.", reg.Len(), reg.Fallback().Name)))
	return nil
}
