package main

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dayforge/dayforge"
)

const logo = `
	██████╗  █████╗ ██╗   ██╗███████╗ ██████╗ ██████╗  ██████╗ ███████╗
	██╔══██╗██╔══██╗╚██╗ ██╔╝██╔════╝██╔═══██╗██╔══██╗██╔════╝ ██╔════╝
	██║  ██║███████║ ╚████╔╝ █████╗  ██║   ██║██████╔╝██║  ███╗█████╗
	██║  ██║██╔══██║  ╚██╔╝  ██╔══╝  ██║   ██║██╔══██╗██║   ██║██╔══╝
	██████╔╝██║  ██║   ██║   ██║     ╚██████╔╝██║  ██║╚██████╔╝███████╗
	╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═╝      ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚══════╝`

const commandHelp = `COMMANDS:
  <task>: add a task with the selected priority
  /p [high|medium|low]: cycle or set priority for new tasks
  /t <n>: toggle task n complete
  /x <n>: delete task n
  /g: generate today's schedule
  /s: show/hide the schedule panel
  /b: open the habits form
  /r: reload tasks
  /out: sign out
  /h: this help
`

type mode int

const (
	modeLogin mode = iota
	modeSigningIn
	modeDashboard
)

type model struct {
	// children
	vp        viewport.Model
	userinput textinput.Model
	spin      spinner.Model
	habits    habitsForm

	// supplied
	l      dayforge.Logger
	api    dayforge.TaskAPI
	tokens dayforge.TokenProvider

	// state
	mode         mode
	session      dayforge.Session
	prompt       dayforge.DeviceCodePrompt
	tasks        []dayforge.Task
	schedule     []dayforge.ScheduleItem
	showSchedule bool
	priority     dayforge.TaskPriority
	busy         bool
	busyLabel    string
	alerts       []string
	quitting     bool
	h            int

	// one in-flight op at a time; starting another cancels the stale one
	opCancel context.CancelFunc

	// configuration
	cmdTimeout time.Duration
	genTimeout time.Duration
	timeFormat string
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.checkSession, textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var tiCmd, vpCmd, spCmd, cmd tea.Cmd

	m, cmd = m.updateParent(msg)

	// update children

	if m.habits.open {
		m.habits, tiCmd = m.habits.Update(msg)
	} else {
		m.userinput, tiCmd = m.userinput.Update(msg)
	}

	if m.busy {
		m.spin, spCmd = m.spin.Update(msg)
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// vp updates on KeyMsg cause view flickering
	default:
		m.vp, vpCmd = m.vp.Update(msg)
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd, cmd)
}

func (m model) updateParent(msg tea.Msg) (model, tea.Cmd) {
	switch msg := msg.(type) {
	case ErrorMsg:
		m.finishOp()
		m.l.Error("operation failed", "error", msg.err)
		if m.mode == modeSigningIn {
			m.mode = modeLogin
			m.prompt = dayforge.DeviceCodePrompt{}
		}
		m.addAlert(msg.notice, colorRed)
		return m, nil
	case SessionMsg:
		if msg.ok {
			return m.enterDashboard(msg.session)
		}
		m.mode = modeLogin
		return m, nil
	case DeviceCodeMsg:
		m.prompt = msg.flow.Prompt()
		flow := msg.flow
		// the user may take minutes to enter the code; no timeout
		ctx := m.restartOpWithTimeout("waiting for sign-in", 0)
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			session, err := flow.Wait(ctx)
			if err != nil {
				return ErrorMsg{err: err, notice: noticeSignIn}
			}
			return SignedInMsg{session: session}
		})
	case SignedInMsg:
		m.finishOp()
		m.prompt = dayforge.DeviceCodePrompt{}
		return m.enterDashboard(msg.session)
	case SignedOutMsg:
		m.finishOp()
		m.mode = modeLogin
		m.session = dayforge.Session{}
		m.tasks = nil
		m.schedule = nil
		m.showSchedule = false
		return m, nil
	case TasksLoadedMsg:
		m.finishOp()
		m.tasks = msg.tasks
		m.refreshViewport()
		return m, nil
	case TaskCreatedMsg:
		m.finishOp()
		m.tasks = append(m.tasks, msg.task)
		m.refreshViewport()
		return m, nil
	case TaskUpdatedMsg:
		m.finishOp()
		for i := range m.tasks {
			if m.tasks[i].ID == msg.task.ID {
				m.tasks[i] = msg.task
				break
			}
		}
		m.refreshViewport()
		return m, nil
	case TaskDeletedMsg:
		m.finishOp()
		m.tasks = slices.DeleteFunc(m.tasks, func(t dayforge.Task) bool {
			return t.ID == msg.id
		})
		m.refreshViewport()
		return m, nil
	case ScheduleMsg:
		m.finishOp()
		m.schedule = msg.items
		m.showSchedule = true
		m.refreshViewport()
		return m, nil
	case tea.WindowSizeMsg:
		m.h = msg.Height
		m.userinput.Width = msg.Width
		m.vp.Width = msg.Width
		m.resizeViewport()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		m.finishOp()
		return m, tea.Quit
	}

	switch m.mode {
	case modeLogin:
		if msg.Type == tea.KeyEnter && !m.busy {
			return m.beginSignIn()
		}
		return m, nil
	case modeSigningIn:
		return m, nil
	}

	// dashboard
	if m.habits.open {
		switch msg.Type {
		case tea.KeyTab, tea.KeyDown:
			m.habits.Next()
			return m, nil
		case tea.KeyShiftTab, tea.KeyUp:
			m.habits.Prev()
			return m, nil
		case tea.KeyEnter:
			if err := m.habits.Apply(); err != nil {
				m.addAlert(err.Error(), colorYellow)
				return m, nil
			}
			m.habits.Close()
			return m, nil
		case tea.KeyEsc:
			m.habits.Close()
			return m, nil
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		// discourage overlapping ops the way a disabled form would
		if m.busy {
			return m, nil
		}
		input := m.userinput.Value()
		m.userinput.Reset()
		if input == "" {
			return m, nil
		}

		var cmd tea.Cmd
		m.alerts = nil
		m, cmd = m.handleInput(input)
		m.refreshViewport()
		return m, cmd
	}
	return m, nil
}

func (m model) handleInput(input string) (model, tea.Cmd) {
	if strings.HasPrefix(input, "/") {
		parts := strings.SplitN(input, " ", 2)
		switch parts[0] {
		case "/h":
			m.addAlert(commandHelp, colorYellow)
			return m, nil
		case "/p":
			if len(parts) < 2 {
				m.priority = nextPriority(m.priority)
				return m, nil
			}
			p, ok := parsePriority(parts[1])
			if !ok {
				m.addAlert("usage: /p [high|medium|low]", colorYellow)
				return m, nil
			}
			m.priority = p
			return m, nil
		case "/t":
			task, ok := m.taskAt(parts)
			if !ok {
				m.addAlert("usage: /t <task number>", colorYellow)
				return m, nil
			}
			ctx := m.restartOp("updating")
			completed := !task.Completed
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				updated, err := m.api.UpdateTask(ctx, task.ID, dayforge.TaskPatch{Completed: &completed})
				if err != nil {
					return ErrorMsg{err: err, notice: noticeUpdate}
				}
				return TaskUpdatedMsg{task: updated}
			})
		case "/x":
			task, ok := m.taskAt(parts)
			if !ok {
				m.addAlert("usage: /x <task number>", colorYellow)
				return m, nil
			}
			ctx := m.restartOp("deleting")
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				if err := m.api.DeleteTask(ctx, task.ID); err != nil {
					return ErrorMsg{err: err, notice: noticeDelete}
				}
				return TaskDeletedMsg{id: task.ID}
			})
		case "/g":
			if len(m.tasks) == 0 {
				m.addAlert("Add at least one task before generating a schedule.", colorRed)
				return m, nil
			}
			tasks := slices.Clone(m.tasks)
			habits := m.habits.Profile()
			ctx := m.restartOpWithTimeout("generating schedule", m.genTimeout)
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				items, err := m.api.GenerateSchedule(ctx, tasks, habits)
				if err != nil {
					return ErrorMsg{err: err, notice: noticeGenerate}
				}
				return ScheduleMsg{items: items}
			})
		case "/s":
			if len(m.schedule) == 0 {
				m.addAlert("no schedule generated yet", colorYellow)
				return m, nil
			}
			// dismissing keeps the schedule; /s brings it back
			m.showSchedule = !m.showSchedule
			return m, nil
		case "/b":
			m.habits.Open()
			return m, nil
		case "/r":
			return m.loadTasks()
		case "/out":
			ctx := m.restartOp("signing out")
			return m, tea.Batch(m.spin.Tick, func() tea.Msg {
				if err := m.tokens.SignOut(ctx); err != nil {
					return ErrorMsg{err: err, notice: noticeSignOut}
				}
				return SignedOutMsg{}
			})
		default:
			m.addAlert(commandHelp, colorYellow)
			return m, nil
		}
	}

	// plain text adds a task; whitespace-only input is dropped silently
	text := strings.TrimSpace(input)
	if text == "" {
		return m, nil
	}
	ctx := m.restartOp("adding")
	priority := m.priority
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		created, err := m.api.CreateTask(ctx, text, priority)
		if err != nil {
			return ErrorMsg{err: err, notice: noticeAdd}
		}
		return TaskCreatedMsg{task: created}
	})
}

func (m model) checkSession() tea.Msg {
	timeout, cancel := context.WithTimeout(context.Background(), m.cmdTimeout)
	defer cancel()

	acct, ok := m.tokens.ActiveAccount(timeout)
	if !ok {
		return SessionMsg{}
	}
	return SessionMsg{
		session: dayforge.Session{Account: acct},
		ok:      true,
	}
}

func (m model) beginSignIn() (model, tea.Cmd) {
	m.mode = modeSigningIn
	// no timeout here: the device-code flow waits on the user
	ctx := m.restartOpWithTimeout("starting sign-in", 0)
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		flow, err := m.tokens.BeginSignIn(ctx)
		if err != nil {
			return ErrorMsg{err: err, notice: noticeSignIn}
		}
		return DeviceCodeMsg{flow: flow}
	})
}

func (m model) enterDashboard(session dayforge.Session) (model, tea.Cmd) {
	m.mode = modeDashboard
	m.session = session
	return m.loadTasks()
}

func (m model) loadTasks() (model, tea.Cmd) {
	ctx := m.restartOp("loading tasks")
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		tasks, err := m.api.ListTasks(ctx)
		if err != nil {
			return ErrorMsg{err: err, notice: noticeLoad}
		}
		return TasksLoadedMsg{tasks: tasks}
	})
}

// restartOp cancels any stale in-flight op and opens a new one, so a
// superseding action never races a forgotten completion.
func (m *model) restartOp(label string) context.Context {
	return m.restartOpWithTimeout(label, m.cmdTimeout)
}

func (m *model) restartOpWithTimeout(label string, timeout time.Duration) context.Context {
	if m.opCancel != nil {
		m.opCancel()
	}
	ctx := context.Background()
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	m.opCancel = cancel
	m.busy = true
	m.busyLabel = label
	return ctx
}

func (m *model) finishOp() {
	if m.opCancel != nil {
		m.opCancel()
		m.opCancel = nil
	}
	m.busy = false
	m.busyLabel = ""
}

func (m *model) addAlert(alert string, c color) {
	m.alerts = append(m.alerts, colorize(c, alert))
}

func (m model) taskAt(parts []string) (dayforge.Task, bool) {
	if len(parts) < 2 {
		return dayforge.Task{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || n < 1 || n > len(m.tasks) {
		return dayforge.Task{}, false
	}
	return m.tasks[n-1], true
}

func nextPriority(p dayforge.TaskPriority) dayforge.TaskPriority {
	switch p {
	case dayforge.PriorityHigh:
		return dayforge.PriorityMedium
	case dayforge.PriorityMedium:
		return dayforge.PriorityLow
	default:
		return dayforge.PriorityHigh
	}
}

func parsePriority(s string) (dayforge.TaskPriority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "h":
		return dayforge.PriorityHigh, true
	case "medium", "med", "m":
		return dayforge.PriorityMedium, true
	case "low", "l":
		return dayforge.PriorityLow, true
	}
	return "", false
}
