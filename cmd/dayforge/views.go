package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case modeLogin, modeSigningIn:
		return m.renderLogin()
	}
	return m.renderDashboard()
}

func (m model) renderLogin() string {
	var sb strings.Builder
	sb.WriteString(colorize(colorYellow, logo))
	sb.WriteString("\n\n")

	if m.prompt.UserCode != "" {
		if m.prompt.Message != "" {
			sb.WriteString(m.prompt.Message)
		} else {
			sb.WriteString(fmt.Sprintf(
				"To sign in, visit %s and enter the code %s",
				m.prompt.VerificationURL,
				m.prompt.UserCode,
			))
		}
		sb.WriteString("\n\n")
	} else if m.mode == modeLogin && !m.busy {
		sb.WriteString("Press enter to sign in with your Microsoft account\n\n")
	}

	if m.busy {
		sb.WriteString(fmt.Sprintf("%s %s\n\n", m.spin.View(), m.busyLabel))
	}

	if len(m.alerts) > 0 {
		sb.WriteString(strings.Join(m.alerts, "\n"))
		sb.WriteString("\n\n")
	}

	sb.WriteString(faintStyle.Render("(ctrl+c to quit)"))
	sb.WriteRune('\n')
	return sb.String()
}

func (m model) renderDashboard() string {
	sections := []string{
		m.renderHeader(),
		m.vp.View(),
	}
	if m.habits.open {
		sections = append(sections, m.habits.View())
	}
	if m.showSchedule {
		sections = append(sections, m.renderSchedule())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(0, sections...)
}

func (m model) renderHeader() string {
	who := m.session.Account.DisplayName()
	return fmt.Sprintf(
		"%s  %s\n",
		headerStyle.Render("DayForge — "+who),
		faintStyle.Render("new task priority: ")+renderPriority(m.priority),
	)
}

func (m model) renderTasks() string {
	if len(m.tasks) == 0 {
		return faintStyle.Render("No tasks yet. Type one and press enter.")
	}
	lines := make([]string, 0, len(m.tasks))
	for i, t := range m.tasks {
		lines = append(lines, renderTaskLine(i, t, m.timeFormat))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderSchedule() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Today's schedule"))
	sb.WriteRune('\n')
	if len(m.schedule) == 0 {
		sb.WriteString(faintStyle.Render("(empty)"))
	}
	for i, item := range m.schedule {
		sb.WriteString(renderScheduleLine(item))
		if i != len(m.schedule)-1 {
			sb.WriteRune('\n')
		}
	}
	return panelStyle.Render(sb.String())
}

func (m model) renderFooter() string {
	var footer strings.Builder
	footer.WriteRune('\n')
	footer.WriteString(m.userinput.View())
	footer.WriteString("\n\n")

	showQuit := true
	if m.busy {
		footer.WriteString(fmt.Sprintf("%s %s", m.spin.View(), m.busyLabel))
		footer.WriteString("\n\n")
		showQuit = false
	}

	if len(m.alerts) > 0 {
		footer.WriteString(strings.Join(m.alerts, "\n"))
		footer.WriteString("\n\n")
		showQuit = false
	}

	if showQuit {
		footer.WriteString(faintStyle.Render(`(enter "/h" for help, ctrl+c to quit)`))
		footer.WriteRune('\n')
	}

	return footer.String()
}

func (m *model) refreshViewport() {
	m.vp.SetContent(m.renderTasks())
	m.resizeViewport()
}

func (m *model) resizeViewport() {
	tasksHeight := lipgloss.Height(m.renderTasks())
	overhead := lipgloss.Height(m.renderHeader()) + lipgloss.Height(m.renderFooter())
	if m.habits.open {
		overhead += lipgloss.Height(m.habits.View())
	}
	if m.showSchedule {
		overhead += lipgloss.Height(m.renderSchedule())
	}
	m.vp.Height = max(1, min(tasksHeight, m.h-overhead))
	m.vp.GotoBottom()
}
