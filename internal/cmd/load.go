package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finsynth/finsynth/internal/config"
	"github.com/finsynth/finsynth/internal/database"
	"github.com/finsynth/finsynth/internal/ui"
)

var loadInputDir string

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load generated CSV data into MySQL/MariaDB",
	Long: `Load the generated star schema into a MySQL/MariaDB warehouse using
LOAD DATA LOCAL INFILE.

The load process:
1. Creates tables if they don't exist (no indexes)
2. Disables foreign key and unique checks for speed
3. Loads all seven tables in parallel
4. Creates indexes and foreign keys after loading

Both plain CSV files and xz-compressed files (.csv.xz) are handled.

Examples:
  finsynth load --db "user:pass@tcp(localhost:3306)/finsynth"
  finsynth load --db "user:pass@tcp(localhost:3306)/finsynth" --input ./my-data`,
	Run: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	f := loadCmd.Flags()
	f.String("db", "", "database connection string (required)")
	f.StringVar(&loadInputDir, "input", "./output", "input directory containing CSV files")
	f.Int("db-max-open", 10, "max open database connections")
	f.Int("db-max-idle", 10, "max idle database connections")

	loadCmd.MarkFlagRequired("db")

	viper.BindPFlag("database.dsn", f.Lookup("db"))
	viper.BindPFlag("database.max_open_conns", f.Lookup("db-max-open"))
	viper.BindPFlag("database.max_idle_conns", f.Lookup("db-max-idle"))
}

// loadResult holds the result of loading a table
type loadResult struct {
	table    string
	rows     int64
	duration time.Duration
	err      error
}

func runLoad(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	fmt.Println(u.Header("finsynth Warehouse Loader"))
	fmt.Println()
	fmt.Println(u.KeyValue("Database", maskDSN(cfg.Database.DSN)))
	fmt.Println(u.KeyValue("Input", loadInputDir))
	fmt.Println(u.KeyValue("DB Pool", fmt.Sprintf("%d open / %d idle", cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)))
	fmt.Println()

	if err := validateInputDir(loadInputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if hasCompressedFiles(loadInputDir) {
		if _, err := exec.LookPath("xz"); err != nil {
			fmt.Fprintln(os.Stderr, "Error: xz not found but compressed files detected")
			fmt.Fprintln(os.Stderr, "Install xz-utils (Linux) or xz (macOS via Homebrew)")
			os.Exit(1)
		}
	}

	pool, err := database.NewPool(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	spin := u.NewSpinner("Connecting to database")
	spin.Start()
	if err := pool.Connect(ctx); err != nil {
		spin.Error("connection failed: " + err.Error())
		os.Exit(1)
	}
	spin.Success("connected!")

	loader := database.NewLoader(pool)

	spinTables := u.NewSpinner("Creating tables")
	spinTables.Start()
	ddl, err := schemaFS.ReadFile("schemas/schema_no_indexes.sql")
	if err != nil {
		spinTables.Error("failed to read schema: " + err.Error())
		os.Exit(1)
	}
	if err := loader.CreateTables(ctx, string(ddl)); err != nil {
		spinTables.Error("failed: " + err.Error())
		os.Exit(1)
	}
	spinTables.Success("tables ready")

	if err := loader.DisableChecks(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error disabling checks: %v\n", err)
		os.Exit(1)
	}

	u.Section("Loading data...")
	startTime := time.Now()
	results, loadErr := loadTablesParallel(ctx, loader, loadInputDir, u)
	loadDuration := time.Since(startTime)

	if loadErr != nil {
		fmt.Fprintln(os.Stderr, u.Error("Load stopped due to error"))
		printLoadSummary(u, results, loadDuration, pool.Stats())
		os.Exit(1)
	}

	if err := loader.EnableChecks(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error re-enabling checks: %v\n", err)
		os.Exit(1)
	}

	u.Section("Creating indexes...")
	indexDDL, err := schemaFS.ReadFile("schemas/schema_indexes.sql")
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error("Error reading index schema: "+err.Error()))
		os.Exit(1)
	}
	progress := u.NewIndexProgress(len(database.SplitStatements(string(indexDDL))))
	if err := loader.CreateIndexes(ctx, string(indexDDL), func(done, total int) {
		progress.Update(done)
	}); err != nil {
		fmt.Fprintln(os.Stderr, u.Error("Error creating indexes: "+err.Error()))
		os.Exit(1)
	}
	progress.Complete()

	printLoadSummary(u, results, loadDuration, pool.Stats())
}

// loadTablesParallel loads all tables concurrently with fail-fast behavior
func loadTablesParallel(ctx context.Context, loader *database.Loader, inputDir string, u *ui.UI) ([]loadResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]loadResult, len(database.Tables))
	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup

	for i, table := range database.Tables {
		wg.Add(1)
		go func(idx int, tbl database.Table) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			default:
			}

			result := loadTable(ctx, loader, inputDir, tbl, u)
			results[idx] = result

			if result.err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = result.err
				}
				mu.Unlock()
				cancel()
			}
		}(i, table)
	}

	wg.Wait()
	return results, firstErr
}

// loadTable loads a single table, preferring the compressed export
func loadTable(ctx context.Context, loader *database.Loader, inputDir string, tbl database.Table, u *ui.UI) loadResult {
	start := time.Now()
	result := loadResult{table: tbl.Name}

	csvPath := filepath.Join(inputDir, tbl.Name+".csv")
	xzPath := filepath.Join(inputDir, tbl.Name+".csv.xz")

	var filePath string
	var isCompressed bool

	if _, err := os.Stat(xzPath); err == nil {
		filePath = xzPath
		isCompressed = true
	} else if _, err := os.Stat(csvPath); err == nil {
		filePath = csvPath
	} else {
		result.err = fmt.Errorf("file not found: %s or %s", csvPath, xzPath)
		u.PrintSkipped(tbl.Name, "no file")
		return result
	}

	if isCompressed {
		result.rows, result.err = loadCompressedFile(ctx, loader, filePath, tbl)
	} else {
		result.rows, result.err = loader.LoadCSV(ctx, tbl, filePath)
	}
	result.duration = time.Since(start)

	u.PrintTableLoadResult(tbl.Name, result.rows, result.duration, result.err)

	return result
}

// loadCompressedFile decompresses an xz export to a temp file, then loads it
func loadCompressedFile(ctx context.Context, loader *database.Loader, xzPath string, tbl database.Table) (int64, error) {
	tmpFile, err := os.CreateTemp("", fmt.Sprintf("finsynth_%s_*.csv", tbl.Name))
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	xzCmd := exec.CommandContext(ctx, "xz", "-d", "-c", xzPath)
	xzCmd.Stdout = tmpFile
	xzCmd.Stderr = os.Stderr

	if err := xzCmd.Run(); err != nil {
		tmpFile.Close()
		return 0, fmt.Errorf("xz decompression failed: %w", err)
	}
	tmpFile.Close()

	return loader.LoadCSV(ctx, tbl, tmpPath)
}

// maskDSN hides the password between : and @
func maskDSN(dsn string) string {
	if colonIdx := strings.Index(dsn, ":"); colonIdx > 0 {
		rest := dsn[colonIdx:]
		if atIdx := strings.Index(rest, "@"); atIdx > 0 {
			return dsn[:colonIdx+1] + "***" + rest[atIdx:]
		}
	}
	return dsn
}

func validateInputDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("input directory does not exist: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	for _, tbl := range database.Tables {
		if _, err := os.Stat(filepath.Join(dir, tbl.Name+".csv")); err == nil {
			return nil
		}
		if _, err := os.Stat(filepath.Join(dir, tbl.Name+".csv.xz")); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no CSV files found in %s", dir)
}

func hasCompressedFiles(dir string) bool {
	for _, tbl := range database.Tables {
		if _, err := os.Stat(filepath.Join(dir, tbl.Name+".csv.xz")); err == nil {
			return true
		}
	}
	return false
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}

func formatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

func printLoadSummary(u *ui.UI, results []loadResult, totalDuration time.Duration, stats database.PoolStats) {
	var totalRows int64
	var failures int

	for _, r := range results {
		if r.err != nil {
			failures++
		} else {
			totalRows += r.rows
		}
	}

	items := []ui.KV{
		{Key: "Total rows", Value: formatNumber(totalRows)},
		{Key: "Total time", Value: formatDuration(totalDuration)},
		{Key: "Queries", Value: formatNumber(stats.TotalQueries)},
		{Key: "Avg query", Value: formatDuration(stats.AvgLatency)},
	}

	if stats.FailedQueries > 0 {
		items = append(items, ui.KV{Key: "Failed queries", Value: formatNumber(stats.FailedQueries)})
	}

	if failures > 0 {
		items = append(items, ui.KV{Key: "Failed", Value: fmt.Sprintf("%d tables", failures)})
		items = append(items, ui.KV{Key: "Status", Value: "Failed"})
	} else {
		items = append(items, ui.KV{Key: "Status", Value: "Success"})
	}

	fmt.Println(u.SummaryBox("Load Summary", items))

	if failures > 0 {
		os.Exit(1)
	}
}
