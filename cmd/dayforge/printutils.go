package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dayforge/dayforge"
)

const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

type color = string

var (
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func colorize(c color, s string) string {
	return c + s + colorReset
}

func renderPriority(p dayforge.TaskPriority) string {
	switch p {
	case dayforge.PriorityHigh:
		return colorize(colorRed, string(p))
	case dayforge.PriorityLow:
		return faintStyle.Render(string(p))
	default:
		return colorize(colorYellow, string(p))
	}
}

func renderTaskLine(i int, t dayforge.Task, timeFormat string) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	text := t.Text
	if t.Completed {
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%2d. %s %-6s %s", i+1, box, renderPriority(t.Priority), text)
	if !t.CreatedAt.IsZero() {
		line += faintStyle.Render(" " + t.CreatedAt.Format(timeFormat))
	}
	return line
}

func renderScheduleLine(item dayforge.ScheduleItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-7s %s", item.Time, item.Task))
	if item.Duration != "" {
		sb.WriteString(faintStyle.Render(" (" + item.Duration + ")"))
	}
	if item.BreakDuration != "" {
		sb.WriteString(faintStyle.Render(" +break " + string(item.BreakDuration)))
	}
	return sb.String()
}
