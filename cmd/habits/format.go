// ABOUTME: Shared output helpers for CLI commands.
// ABOUTME: Colors, padding, and argument parsing used across commands.
package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/engine"
	"github.com/harperreed/habits/internal/models"
)

var (
	faint   = color.New(color.Faint)
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	cyan    = color.New(color.FgCyan)
	boldCol = color.New(color.Bold)
)

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

// recentDots renders the rolling seven-day buffer, oldest first.
func recentDots(r engine.Recent) string {
	var b strings.Builder
	for _, done := range r {
		if done {
			b.WriteString("●")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

func checkMark(done bool) string {
	if done {
		return green.Sprint("✓")
	}
	return faint.Sprint("○")
}

func streakLabel(n int) string {
	if n == 0 {
		return faint.Sprint("no streak")
	}
	unit := "days"
	if n == 1 {
		unit = "day"
	}
	return yellow.Sprintf("🔥 %d %s", n, unit)
}

func habitLine(h *models.Habit) string {
	return fmt.Sprintf("%s %s %s %s  %s",
		checkMark(h.CompletedToday),
		faint.Sprint(h.ShortID()),
		padRight(truncate(h.Name, 30), 30),
		faint.Sprint(recentDots(h.Recent)),
		streakLabel(h.Streak))
}

// parseDayArg accepts YYYY-MM-DD, RFC 3339, "today" and "yesterday".
func parseDayArg(s string, today engine.Day) (engine.Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today - 1, nil
	}
	d, err := engine.ParseDay(s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return d, nil
}

// parseMonthArg accepts YYYY-MM; empty means the month containing today.
func parseMonthArg(s string, today engine.Day) (int, time.Month, error) {
	if s == "" {
		y, m, _ := today.Date()
		return y, m, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (use YYYY-MM)", s)
	}
	return t.Year(), t.Month(), nil
}
