package dayforge

import (
	"context"
)

// TaskAPI is the typed surface of the todo/schedule backend. Implementations
// attach authorization per request; callers never see tokens.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]Task, error)
	CreateTask(ctx context.Context, text string, priority TaskPriority) (Task, error)
	UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id string) error
	GenerateSchedule(ctx context.Context, tasks []Task, habits HabitsProfile) ([]ScheduleItem, error)
}
