package database

import (
	"strings"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	ddl := `-- comment line
CREATE TABLE a (
    id INT
);

CREATE INDEX idx_a ON a (id);
`

	statements := SplitStatements(ddl)

	if len(statements) != 2 {
		t.Fatalf("Expected 2 statements, got %d", len(statements))
	}
	if !strings.HasPrefix(statements[0], "CREATE TABLE a") {
		t.Errorf("Unexpected first statement: %q", statements[0])
	}
	if !strings.HasPrefix(statements[1], "CREATE INDEX idx_a") {
		t.Errorf("Unexpected second statement: %q", statements[1])
	}

	t.Run("Comments dropped", func(t *testing.T) {
		for _, s := range statements {
			if strings.Contains(s, "--") {
				t.Errorf("Statement retains comment: %q", s)
			}
		}
	})

	t.Run("Empty input", func(t *testing.T) {
		if got := SplitStatements(""); len(got) != 0 {
			t.Errorf("Expected no statements, got %d", len(got))
		}
	})
}

func TestTablesCoverStarSchema(t *testing.T) {
	expected := []string{
		"dim_time", "dim_customer", "dim_product", "dim_account",
		"dim_cost_center", "fact_transactions", "fact_financials",
	}

	if len(Tables) != len(expected) {
		t.Fatalf("Expected %d tables, got %d", len(expected), len(Tables))
	}
	for i, name := range expected {
		if Tables[i].Name != name {
			t.Errorf("Expected table %s at position %d, got %s", name, i, Tables[i].Name)
		}
	}
}

func TestTableLoadStatement(t *testing.T) {
	for _, tbl := range Tables {
		stmt := tbl.LoadStatement("/tmp/" + tbl.Name + ".csv")

		if !strings.HasPrefix(stmt, "LOAD DATA LOCAL INFILE") {
			t.Errorf("Table %s: statement missing LOAD DATA prefix", tbl.Name)
		}
		if !strings.Contains(stmt, "INTO TABLE "+tbl.Name) {
			t.Errorf("Table %s: statement targets wrong table", tbl.Name)
		}
		if !strings.Contains(stmt, "/tmp/"+tbl.Name+".csv") {
			t.Errorf("Table %s: file path not substituted", tbl.Name)
		}
		if !strings.Contains(stmt, "IGNORE 1 LINES") {
			t.Errorf("Table %s: header row not skipped", tbl.Name)
		}
	}
}

func TestEnsureDSNParam(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "no params",
			dsn:  "user:pass@tcp(localhost:3306)/finsynth",
			want: "user:pass@tcp(localhost:3306)/finsynth?parseTime=true",
		},
		{
			name: "existing params",
			dsn:  "user:pass@tcp(localhost:3306)/finsynth?charset=utf8",
			want: "user:pass@tcp(localhost:3306)/finsynth?charset=utf8&parseTime=true",
		},
		{
			name: "already set",
			dsn:  "user:pass@tcp(localhost:3306)/finsynth?parseTime=false",
			want: "user:pass@tcp(localhost:3306)/finsynth?parseTime=false",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ensureDSNParam(tt.dsn, "parseTime", "true"); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
