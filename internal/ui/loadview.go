package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// tableNameWidth fits the longest warehouse table name (fact_transactions).
const tableNameWidth = 18

// Section prints a section header.
func (u *UI) Section(title string) {
	if !u.shouldStyle() {
		fmt.Printf("\n%s\n", title)
		return
	}

	fmt.Printf("\n%s\n", lipgloss.NewStyle().Bold(true).Render(title))
}

// Print prints a regular message.
func (u *UI) Print(msg string) {
	fmt.Println(msg)
}

// PrintTableLoadResult prints one line per loaded warehouse table.
func (u *UI) PrintTableLoadResult(name string, rows int64, duration time.Duration, err error) {
	if err != nil {
		fmt.Println(u.TableRow(name, "FAILED", StatusError))
		fmt.Printf("    %s\n", u.Muted(err.Error()))
		return
	}

	value := fmt.Sprintf("%s rows in %s", formatRowCount(rows), formatDuration(duration))
	fmt.Println(u.TableRow(name, value, StatusSuccess))
}

// PrintSkipped prints a skipped message.
func (u *UI) PrintSkipped(name string, reason string) {
	if !u.shouldStyle() {
		fmt.Printf("  %-*s SKIPPED (%s)\n", tableNameWidth, name+":", reason)
		return
	}

	nameStyle := lipgloss.NewStyle().Width(tableNameWidth)
	fmt.Printf("  %s %s %s\n",
		StyleWarning.Render(SymbolWarning),
		nameStyle.Render(name),
		u.Muted("skipped: "+reason),
	)
}

// IndexProgressDisplay shows index creation progress.
type IndexProgressDisplay struct {
	ui      *UI
	total   int
	current int
	mu      sync.Mutex
}

// NewIndexProgress creates an index progress display.
func (u *UI) NewIndexProgress(total int) *IndexProgressDisplay {
	return &IndexProgressDisplay{
		ui:    u,
		total: total,
	}
}

// Update updates the current index count.
func (p *IndexProgressDisplay) Update(current int) {
	p.mu.Lock()
	p.current = current
	p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Printf("  [%d/%d] Creating index/constraint...\r", current, p.total)
		return
	}

	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	pct := float64(current) / float64(p.total)
	countStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintf(os.Stdout, "%s  %s %s %s",
		p.ui.ClearLine(),
		bar.ViewAs(pct),
		countStyle.Render(fmt.Sprintf("[%d/%d]", current, p.total)),
		StyleMuted.Render("Creating indexes..."),
	)
}

// Complete finishes with success.
func (p *IndexProgressDisplay) Complete() {
	if !p.ui.shouldStyle() {
		fmt.Println()
		return
	}

	fmt.Fprintf(os.Stdout, "%s  %s %s\n",
		p.ui.ClearLine(),
		StyleSuccess.Render(SymbolSuccess),
		fmt.Sprintf("Created %d indexes", p.total),
	)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hrs := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hrs, mins)
}

// formatRowCount formats a row count with K/M suffix.
func formatRowCount(rows int64) string {
	if rows >= 1_000_000 {
		return fmt.Sprintf("%.1fM", float64(rows)/1_000_000)
	}
	if rows >= 1_000 {
		return fmt.Sprintf("%.1fK", float64(rows)/1_000)
	}
	return fmt.Sprintf("%d", rows)
}
