// ABOUTME: Terminal rendering of month calendars and heat maps.
// ABOUTME: Uses lipgloss styles; the engine decides what each cell holds.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/harperreed/habits/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	cellStyle = lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Right)

	paddingStyle = cellStyle.
			Foreground(lipgloss.Color("238"))

	todayStyle = cellStyle.
			Underline(true).
			Bold(true)

	// coverageColors index Coverage.Level.
	coverageColors = []lipgloss.Color{"240", "22", "28", "34", "40"}

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("236")).
			Padding(0, 1)
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

func completedStyle(hex string) lipgloss.Style {
	return cellStyle.Foreground(lipgloss.Color(hex)).Bold(true)
}

func headerRow() string {
	cells := make([]string, len(weekdayHeader))
	for i, d := range weekdayHeader {
		cells[i] = headerStyle.Inherit(cellStyle).Render(d)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// renderMonth draws one habit's month. Completed days use the habit color.
func renderMonth(title, color string, grid engine.MonthGrid) string {
	rows := []string{
		titleStyle.Render(fmt.Sprintf("%s %d", grid.Month, grid.Year)) + "  " + title,
		headerRow(),
	}
	done := lipgloss.NewStyle()
	if color != "" {
		done = completedStyle(color)
	}
	completed := 0
	for _, week := range grid.Weeks {
		cells := make([]string, 0, engine.GridCols)
		for _, c := range week {
			cells = append(cells, renderDay(c, done))
			if c.Completed {
				completed++
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, headerStyle.Render(fmt.Sprintf("%d days completed", completed)))
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderDay(c engine.Cell, done lipgloss.Style) string {
	switch {
	case !c.InMonth:
		_, _, d := c.Date.Date()
		return paddingStyle.Render(fmt.Sprint(d))
	case c.Completed:
		return done.Inherit(cellStyle).Render(fmt.Sprintf("%d✓", c.Day))
	case c.IsToday:
		return todayStyle.Render(fmt.Sprint(c.Day))
	default:
		return cellStyle.Render(fmt.Sprint(c.Day))
	}
}

// renderCoverage draws all habits for a month, shading days by coverage.
func renderCoverage(grid engine.CoverageGrid) string {
	rows := []string{
		titleStyle.Render(fmt.Sprintf("%s %d", grid.Month, grid.Year)) + "  all habits",
		headerRow(),
	}
	for _, week := range grid.Weeks {
		cells := make([]string, 0, engine.GridCols)
		for _, c := range week {
			if !c.InMonth {
				_, _, d := c.Date.Date()
				cells = append(cells, paddingStyle.Render(fmt.Sprint(d)))
				continue
			}
			style := cellStyle.Foreground(coverageColors[c.Coverage.Level])
			if c.IsToday {
				style = style.Underline(true)
			}
			if c.Completed {
				style = style.Bold(true)
			}
			cells = append(cells, style.Render(fmt.Sprint(c.Day)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	rows = append(rows, coverageLegend())
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func coverageLegend() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("less "))
	for _, c := range coverageColors {
		b.WriteString(lipgloss.NewStyle().Foreground(c).Render("■"))
	}
	b.WriteString(headerStyle.Render(" more"))
	return b.String()
}

var heatRowLabels = []string{"Mon", "", "Wed", "", "Fri", "", "Sun"}

// renderHeatmap draws week columns left to right with Monday on top.
func renderHeatmap(title, color string, hm engine.Heatmap) string {
	on := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	off := lipgloss.NewStyle().Foreground(lipgloss.Color("237"))

	lines := []string{titleStyle.Render(title)}
	for row := 0; row < 7; row++ {
		var b strings.Builder
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-4s", heatRowLabels[row])))
		for _, col := range hm.Weeks {
			cell := col[row]
			switch {
			case cell.Empty:
				b.WriteString("  ")
			case cell.Completed:
				b.WriteString(on.Render("■ "))
			default:
				b.WriteString(off.Render("■ "))
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	days := int(hm.End-hm.Start) + 1
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%s to %s: %d of %d days", hm.Start, hm.End, hm.Completed, days)))
	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
