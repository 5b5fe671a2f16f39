package cmd

import (
	"errors"
	"fmt"

	"attendance-reconciler/core/loader"
	"attendance-reconciler/feature/attendance/schema"

	"github.com/spf13/cobra"
)

var inspectSheet string

// inspectCmd shows how a file would be ingested: its worksheets, headers
// and the resolver's verdict. This is the non-interactive replacement for
// prompting the user about missing columns: inspect the file, then rerun
// reconcile with an explicit --backend-col/--manual-col mapping.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show a file's sheets, headers and how its columns resolve",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "Worksheet to inspect (default: first sheet)")
	RootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	sheets, err := loader.SheetNames(path)
	if err != nil {
		return err
	}
	fmt.Println("Sheets:")
	for _, s := range sheets {
		if s == "" {
			s = "(none)"
		}
		fmt.Printf("  %s\n", s)
	}

	raw, err := loader.Load(path, loader.Options{Sheet: inspectSheet})
	if err != nil {
		return err
	}
	fmt.Printf("\nHeaders (%d):\n", len(raw.Headers))
	for i, h := range raw.Headers {
		fmt.Printf("  %2d: %s\n", i+1, h)
	}

	layout, err := schema.Resolve(raw.Headers, schema.Config{})
	if err != nil {
		var notFound *schema.ColumnNotFoundError
		var dup *schema.DuplicateFieldMatchError
		switch {
		case errors.As(err, &notFound):
			fmt.Printf("\nResolution failed: no column for %s\n", notFound.Field)
			fmt.Println("Supply an explicit mapping, e.g.:")
			fmt.Printf("  reconcile --backend-col %s=\"<header>\"\n", notFound.Field)
		case errors.As(err, &dup):
			fmt.Printf("\nResolution failed: %v\n", dup)
		default:
			return err
		}
		return nil
	}

	fmt.Printf("\nResolved layout: %s\n", layout.Kind)
	printColumn(raw.Headers, "employee_id", layout.Columns.EmployeeID)
	printColumn(raw.Headers, "employee_name", layout.Columns.EmployeeName)
	if layout.Kind == schema.LayoutLong {
		printColumn(raw.Headers, "date", layout.Columns.Date)
		printColumn(raw.Headers, "value", layout.Columns.Value)
	} else {
		fmt.Printf("  date columns: %d\n", len(layout.DateColumns))
		for _, dc := range layout.DateColumns {
			fmt.Printf("    %2d: %s\n", dc.Index+1, dc.Date)
		}
	}
	return nil
}

func printColumn(headers []string, field string, idx int) {
	if idx >= 0 && idx < len(headers) {
		fmt.Printf("  %-14s -> column %d (%s)\n", field, idx+1, headers[idx])
	}
}
