// Package report renders a summary for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dinerozz/tabsnoop-backend/internal/entity"
)

const defaultBarWidth = 30

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	domainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#74c7ec"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7DC6F"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 1)
)

// Render lays out the summary as a title, the day total, one
// "domain: HH:MM:SS" line per domain and a bar chart of the same totals.
// barWidth <= 0 uses the default width.
func Render(summary *entity.Summary, barWidth int) string {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	title := titleStyle.Render("Time spent per domain")
	today := todayStyle.Render(fmt.Sprintf("Today (%s): %s", summary.Date, summary.TodayFormatted))

	if len(summary.Domains) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, today, mutedStyle.Render("No data recorded yet."))
	}

	nameWidth := 0
	for _, d := range summary.Domains {
		nameWidth = max(nameWidth, len(d.Domain))
	}

	list := make([]string, 0, len(summary.Domains))
	chart := make([]string, 0, len(summary.Domains))
	top := summary.Domains[0].TotalTime

	for _, d := range summary.Domains {
		list = append(list, fmt.Sprintf("%s: %s", domainStyle.Render(d.Domain), d.Formatted))

		label := fmt.Sprintf("%-*s", nameWidth, d.Domain)
		chart = append(chart, fmt.Sprintf("%s %s %6.2f%%", label, bar(d.TotalTime, top, barWidth), d.Percentage))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		today,
		boxStyle.Render(strings.Join(list, "\n")),
		boxStyle.Render(strings.Join(chart, "\n")),
	)
}

// bar scales value against the largest total so the top domain fills the width.
func bar(value, top int64, width int) string {
	filled := 0
	if top > 0 {
		filled = int(value * int64(width) / top)
	}
	filled = min(max(filled, 0), width)

	return barStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
