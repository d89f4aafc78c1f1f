package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayforge/dayforge"
)

func TestHabitsFormDefaults(t *testing.T) {
	f := newHabitsForm()
	assert.Equal(t, dayforge.HabitsProfile{
		WorkStartTime:  "09:00",
		WorkEndTime:    "17:00",
		BreakDuration:  15,
		BreakFrequency: 60,
	}, f.Profile())
}

func TestHabitsFormApply(t *testing.T) {
	f := newHabitsForm()
	f.Open()
	f.inputs[habitsFieldWorkStart].SetValue("08:30")
	f.inputs[habitsFieldWorkEnd].SetValue("16:30")
	f.inputs[habitsFieldBreakDuration].SetValue("10")
	f.inputs[habitsFieldBreakFrequency].SetValue("45")
	f.inputs[habitsFieldFocusArea].SetValue("Dev")

	require.NoError(t, f.Apply())
	assert.Equal(t, dayforge.HabitsProfile{
		WorkStartTime:  "08:30",
		WorkEndTime:    "16:30",
		BreakDuration:  10,
		BreakFrequency: 45,
		FocusArea:      "Dev",
	}, f.Profile())
}

func TestHabitsFormApplyRejectsBadMinutes(t *testing.T) {
	f := newHabitsForm()
	f.Open()
	f.inputs[habitsFieldBreakDuration].SetValue("soon")

	err := f.Apply()
	require.Error(t, err)
	// profile untouched
	assert.Equal(t, 15, f.Profile().BreakDuration)

	f.inputs[habitsFieldBreakDuration].SetValue("-5")
	require.Error(t, f.Apply())
}

func TestHabitsFormFocusCycling(t *testing.T) {
	f := newHabitsForm()
	f.Open()
	assert.Equal(t, habitsFieldWorkStart, f.focus)

	for range habitsFieldCount {
		f.Next()
	}
	assert.Equal(t, habitsFieldWorkStart, f.focus)

	f.Prev()
	assert.Equal(t, habitsFieldFocusArea, f.focus)
}

func TestHabitsFormReopenDiscardsStagedEdits(t *testing.T) {
	f := newHabitsForm()
	f.Open()
	f.inputs[habitsFieldFocusArea].SetValue("staged but never applied")
	f.Close()

	f.Open()
	assert.Empty(t, f.inputs[habitsFieldFocusArea].Value())
}
