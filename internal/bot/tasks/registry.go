package tasks

import (
	"context"
)

// ScheduledTaskFunc defines the signature of a scheduled task.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// Task names as used in the scheduler.tasks config section.
const (
	StorePingTask    = "store_ping"
	MemberReportTask = "member_report"
)

// RegisterAllTasks returns every scheduled task keyed by its config name.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := make(map[string]ScheduledTaskFunc)

	tasks[StorePingTask] = newStorePingTask(deps)
	tasks[MemberReportTask] = newMemberReportTask(deps)

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
