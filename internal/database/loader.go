package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Table describes one warehouse table and how to bulk-load its CSV export.
type Table struct {
	// Name is both the table name and the CSV basename
	Name string

	// loadSQL is the LOAD DATA LOCAL INFILE statement with a %s placeholder
	// for the absolute file path
	loadSQL string
}

// Tables lists the star schema in load order. Only dim_customer and
// fact_financials carry nullable columns (churn_date, cost_center_id),
// exported as empty strings.
var Tables = []Table{
	{
		Name: "dim_time",
		loadSQL: `LOAD DATA LOCAL INFILE '%s'
INTO TABLE dim_time
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(date_key, date, day, month, quarter, year, weekday, is_month_end)`,
	},
	{
		Name: "dim_customer",
		loadSQL: `LOAD DATA LOCAL INFILE '%s'
INTO TABLE dim_customer
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(customer_id, segment, region, risk_score, acquisition_date, @churn_date, is_active)
SET
    churn_date = NULLIF(@churn_date, '')`,
	},
	{
		Name: "dim_product",
		loadSQL: `LOAD DATA LOCAL INFILE '%s'
INTO TABLE dim_product
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(product_id, product_name, category, base_price, direct_cost_ratio)`,
	},
	{
		Name: "dim_account",
		loadSQL: `LOAD DATA LOCAL INFILE '%s'
INTO TABLE dim_account
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(account_id, account_name, account_type, account_group, reporting_line)`,
	},
	{
		Name: "dim_cost_center",
		loadSQL: `LOAD DATA LOCAL INFILE '%s'
INTO TABLE dim_cost_center
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(cost_center_id, department, country, manager)`,
	},
	{
		Name: "fact_transactions",
		loadSQL: `LOAD DATA LOCAL INFILE '%s'
INTO TABLE fact_transactions
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(transaction_id, date_key, customer_id, product_id, quantity, net_revenue, direct_cost, channel)`,
	},
	{
		Name: "fact_financials",
		loadSQL: `LOAD DATA LOCAL INFILE '%s'
INTO TABLE fact_financials
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(posting_id, date_key, account_id, @cost_center_id, amount, currency)
SET
    cost_center_id = NULLIF(@cost_center_id, '')`,
	},
}

// LoadStatement returns the LOAD DATA statement for a file path, for
// display in manual-recovery hints.
func (t Table) LoadStatement(path string) string {
	return fmt.Sprintf(t.loadSQL, path)
}

// Loader performs bulk CSV imports into the warehouse.
type Loader struct {
	pool *Pool
}

// NewLoader creates a loader on top of an open pool
func NewLoader(pool *Pool) *Loader {
	return &Loader{pool: pool}
}

// CreateTables executes the CREATE TABLE statements of the given DDL,
// rewritten to CREATE TABLE IF NOT EXISTS so reruns are safe. DROP, USE and
// CREATE DATABASE statements in the DDL are skipped.
func (l *Loader) CreateTables(ctx context.Context, ddl string) error {
	for _, stmt := range SplitStatements(ddl) {
		upper := strings.ToUpper(stmt)
		if !strings.HasPrefix(upper, "CREATE TABLE") {
			continue
		}
		stmt = strings.Replace(stmt, "CREATE TABLE", "CREATE TABLE IF NOT EXISTS", 1)
		if _, err := l.pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// DisableChecks turns off foreign key and unique checks for bulk loading
func (l *Loader) DisableChecks(ctx context.Context) error {
	for _, q := range []string{
		"SET FOREIGN_KEY_CHECKS = 0",
		"SET UNIQUE_CHECKS = 0",
	} {
		if _, err := l.pool.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// EnableChecks restores foreign key and unique checks after loading
func (l *Loader) EnableChecks(ctx context.Context) error {
	for _, q := range []string{
		"SET UNIQUE_CHECKS = 1",
		"SET FOREIGN_KEY_CHECKS = 1",
	} {
		if _, err := l.pool.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// LoadCSV bulk-loads one CSV file into its table via LOAD DATA LOCAL INFILE
// and returns the number of rows loaded.
func (l *Loader) LoadCSV(ctx context.Context, tbl Table, path string) (int64, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("failed to get absolute path: %w", err)
	}

	mysql.RegisterLocalFile(absPath)
	defer mysql.DeregisterLocalFile(absPath)

	res, err := l.pool.ExecContext(ctx, tbl.LoadStatement(absPath))
	if err != nil {
		return 0, fmt.Errorf("LOAD DATA failed: %w", err)
	}

	rows, _ := res.RowsAffected()
	return rows, nil
}

// CreateIndexes executes the index DDL statement by statement, reporting
// progress through the callback. Duplicate-index errors from reruns are
// ignored.
func (l *Loader) CreateIndexes(ctx context.Context, ddl string, progress func(done, total int)) error {
	statements := SplitStatements(ddl)

	var valid []string
	for _, stmt := range statements {
		upper := strings.ToUpper(stmt)
		if strings.HasPrefix(upper, "USE ") {
			continue
		}
		valid = append(valid, stmt)
	}

	for i, stmt := range valid {
		if progress != nil {
			progress(i+1, len(valid))
		}
		if _, err := l.pool.ExecContext(ctx, stmt); err != nil {
			errStr := err.Error()
			if strings.Contains(errStr, "Duplicate") || strings.Contains(errStr, "already exists") {
				continue
			}
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SplitStatements splits a DDL script into individual statements,
// dropping comment lines and empty statements.
func SplitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	return statements
}
