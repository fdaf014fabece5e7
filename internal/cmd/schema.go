package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finsynth/finsynth/internal/ui"
)

//go:embed schemas/*.sql
var schemaFS embed.FS

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema [type]",
	Short: "Output warehouse schema files",
	Long: `Output the SQL schema for setting up the warehouse.

Available schema types:
  full      Complete star schema with tables and indexes (default)
  tables    Tables only, no indexes (for bulk loading)
  indexes   Indexes and foreign keys only (run after bulk load)

The schema is designed for MariaDB 11+ but should work with MySQL 8+.

Bulk Loading Strategy:
  For best bulk loading performance:
  1. Create tables without indexes: finsynth schema tables | mysql ...
  2. Load data: finsynth load --db ...
  3. The load command creates indexes itself; use 'schema indexes' only
     when loading by hand.

Examples:
  finsynth schema                          # Output complete schema
  finsynth schema full > schema.sql        # Save full schema to file
  finsynth schema tables | mysql -u root finsynth  # Create tables only
  finsynth schema indexes                  # Output index creation SQL`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSchema,
}

var schemaOutputFile string

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runSchema(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	schemaType := "full"
	if len(args) > 0 {
		schemaType = args[0]
	}

	var filename string
	switch schemaType {
	case "full":
		filename = "schemas/schema.sql"
	case "tables":
		filename = "schemas/schema_no_indexes.sql"
	case "indexes":
		filename = "schemas/schema_indexes.sql"
	default:
		fmt.Fprintln(os.Stderr, u.Error(fmt.Sprintf("Unknown schema type '%s'", schemaType)))
		fmt.Fprintln(os.Stderr, "Valid types: full, tables, indexes")
		os.Exit(1)
	}

	content, err := schemaFS.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(fmt.Sprintf("Reading schema: %v", err)))
		os.Exit(1)
	}

	if schemaOutputFile != "" {
		dir := filepath.Dir(schemaOutputFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintln(os.Stderr, u.Error(fmt.Sprintf("Creating directory: %v", err)))
				os.Exit(1)
			}
		}

		if err := os.WriteFile(schemaOutputFile, content, 0644); err != nil {
			fmt.Fprintln(os.Stderr, u.Error(fmt.Sprintf("Writing file: %v", err)))
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, u.Success("Schema written to: "+schemaOutputFile))
	} else {
		fmt.Print(string(content))
	}
}
