package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dayforge/dayforge"
)

const (
	habitsFieldWorkStart = iota
	habitsFieldWorkEnd
	habitsFieldBreakDuration
	habitsFieldBreakFrequency
	habitsFieldFocusArea
	habitsFieldCount
)

var habitsLabels = [habitsFieldCount]string{
	"Work start (HH:MM)",
	"Work end (HH:MM)",
	"Break duration (min)",
	"Break every (min)",
	"Focus area",
}

// habitsForm is the collapsible working-hours form. Inputs are staged; Apply
// parses them into the profile that schedule generation snapshots.
type habitsForm struct {
	inputs  [habitsFieldCount]textinput.Model
	focus   int
	open    bool
	profile dayforge.HabitsProfile
}

func newHabitsForm() habitsForm {
	profile := dayforge.HabitsProfile{
		WorkStartTime:  "09:00",
		WorkEndTime:    "17:00",
		BreakDuration:  15,
		BreakFrequency: 60,
	}

	var f habitsForm
	f.profile = profile
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		f.inputs[i] = in
	}
	f.resetInputs()
	return f
}

func (f *habitsForm) resetInputs() {
	f.inputs[habitsFieldWorkStart].SetValue(f.profile.WorkStartTime)
	f.inputs[habitsFieldWorkEnd].SetValue(f.profile.WorkEndTime)
	f.inputs[habitsFieldBreakDuration].SetValue(strconv.Itoa(f.profile.BreakDuration))
	f.inputs[habitsFieldBreakFrequency].SetValue(strconv.Itoa(f.profile.BreakFrequency))
	f.inputs[habitsFieldFocusArea].SetValue(f.profile.FocusArea)
}

func (f *habitsForm) Open() {
	f.open = true
	f.resetInputs()
	f.setFocus(0)
}

func (f *habitsForm) Close() {
	f.open = false
	f.inputs[f.focus].Blur()
}

func (f *habitsForm) Next() {
	f.setFocus((f.focus + 1) % habitsFieldCount)
}

func (f *habitsForm) Prev() {
	f.setFocus((f.focus + habitsFieldCount - 1) % habitsFieldCount)
}

func (f *habitsForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Apply parses the staged inputs into the profile. Returns a user-facing
// message on bad input; the profile is untouched in that case.
func (f *habitsForm) Apply() error {
	breakDur, err := strconv.Atoi(strings.TrimSpace(f.inputs[habitsFieldBreakDuration].Value()))
	if err != nil || breakDur < 0 {
		return fmt.Errorf("break duration must be a number of minutes >= 0")
	}
	breakFreq, err := strconv.Atoi(strings.TrimSpace(f.inputs[habitsFieldBreakFrequency].Value()))
	if err != nil || breakFreq < 0 {
		return fmt.Errorf("break frequency must be a number of minutes >= 0")
	}

	f.profile = dayforge.HabitsProfile{
		WorkStartTime:  strings.TrimSpace(f.inputs[habitsFieldWorkStart].Value()),
		WorkEndTime:    strings.TrimSpace(f.inputs[habitsFieldWorkEnd].Value()),
		BreakDuration:  breakDur,
		BreakFrequency: breakFreq,
		FocusArea:      strings.TrimSpace(f.inputs[habitsFieldFocusArea].Value()),
	}
	return nil
}

func (f habitsForm) Profile() dayforge.HabitsProfile {
	return f.profile
}

func (f habitsForm) Update(msg tea.Msg) (habitsForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f habitsForm) View() string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("Habits"))
	sb.WriteRune('\n')
	for i := range f.inputs {
		label := habitsLabels[i]
		if i == f.focus {
			label = colorize(colorCyan, "> "+label)
		} else {
			label = "  " + label
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, f.inputs[i].View()))
	}
	sb.WriteString(faintStyle.Render("(tab to move, enter to apply, esc to close)"))
	return panelStyle.Render(sb.String())
}
