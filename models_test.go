package dayforge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskPriorityValid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, TaskPriority("Urgent").Valid())
	assert.False(t, TaskPriority("").Valid())
}

func TestTaskPatchSerializesOnlySetFields(t *testing.T) {
	completed := true
	raw, err := json.Marshal(TaskPatch{Completed: &completed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed":true}`, string(raw))

	assert.True(t, TaskPatch{}.Empty())
	assert.False(t, TaskPatch{Completed: &completed}.Empty())
}

func TestBreakLengthAcceptsStringOrNumber(t *testing.T) {
	var item ScheduleItem
	require.NoError(t, json.Unmarshal(
		[]byte(`{"time":"09:00","task":"Write report","duration":"45m","breakDuration":"15m"}`),
		&item,
	))
	assert.Equal(t, BreakLength("15m"), item.BreakDuration)

	require.NoError(t, json.Unmarshal(
		[]byte(`{"time":"09:00","task":"Write report","duration":"45m","breakDuration":15}`),
		&item,
	))
	assert.Equal(t, BreakLength("15"), item.BreakDuration)

	err := json.Unmarshal([]byte(`{"breakDuration":[15]}`), &item)
	require.Error(t, err)
}

func TestAccountDisplayName(t *testing.T) {
	assert.Equal(t, "Ada", Account{Name: "Ada", Username: "ada@example.com"}.DisplayName())
	assert.Equal(t, "ada@example.com", Account{Username: "ada@example.com"}.DisplayName())
	assert.Equal(t, "ada@example.com", Account{Name: "  ", Username: "ada@example.com"}.DisplayName())
}
