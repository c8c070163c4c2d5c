package engine

import (
	"fmt"
	"sort"

	"github.com/jstrand/planwise/internal/logger"
	"github.com/jstrand/planwise/internal/models"
)

// AutoSchedule places a batch of tasks greedily: tasks are ordered by
// priority descending then deadline ascending, and each task's best
// suggestion is validated and committed before the next task is
// considered. There is no backtracking and no cross-task collision check;
// a failure on one task never rolls back earlier placements.
func (e *Engine) AutoSchedule(userID string, taskIDs []string, startDate, endDate string) models.ScheduleSummary {
	summary := models.ScheduleSummary{
		Scheduled:  []models.ScheduledTask{},
		Failed:     []models.FailedTask{},
		TotalTasks: len(taskIDs),
	}
	if len(taskIDs) == 0 {
		return summary
	}

	tasks, err := e.store.GetTasks(userID, taskIDs)
	if err != nil {
		logger.Error("Auto-schedule failed to load tasks", "user_id", userID, "error", err)
		summary.Failed = append(summary.Failed, models.FailedTask{
			Reason: fmt.Sprintf("Scheduling error: %v", err),
		})
		return summary
	}

	orderTasks(tasks)

	for _, task := range tasks {
		suggestions := e.SuggestSlots(userID, task.ID, startDate, endDate)
		if len(suggestions) == 0 {
			summary.Failed = append(summary.Failed, models.FailedTask{
				TaskID: task.ID,
				Title:  task.Title,
				Reason: "No suitable slots found",
			})
			continue
		}

		best := suggestions[0]
		validation := e.ValidatePlacement(userID, task.ID, best.StartTime, best.EndTime)
		if !validation.IsValid {
			summary.Failed = append(summary.Failed, models.FailedTask{
				TaskID: task.ID,
				Title:  task.Title,
				Reason: "Validation failed",
				Errors: validation.BlockReasons,
			})
			continue
		}

		slot := models.ScheduledSlot{
			StartTime:     best.StartTime,
			EndTime:       best.EndTime,
			CalendarDayID: best.CalendarDayID,
		}
		if err := e.store.ReplaceScheduledSlots(userID, task.ID, []models.ScheduledSlot{slot}); err != nil {
			summary.Failed = append(summary.Failed, models.FailedTask{
				TaskID: task.ID,
				Title:  task.Title,
				Reason: fmt.Sprintf("Failed to persist placement: %v", err),
			})
			continue
		}

		summary.Scheduled = append(summary.Scheduled, models.ScheduledTask{
			TaskID:        task.ID,
			Title:         task.Title,
			ScheduledTime: best.StartTime,
			Score:         best.Score,
		})
	}

	summary.SuccessRate = float64(len(summary.Scheduled)) / float64(len(taskIDs))
	return summary
}

// orderTasks sorts by priority descending, then earliest deadline first
// with undated tasks last. The sort is stable so equal tasks keep their
// query order.
func orderTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority.Rank() != tasks[j].Priority.Rank() {
			return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
		}
		di, dj := tasks[i].Deadline, tasks[j].Deadline
		switch {
		case di == nil && dj == nil:
			return false
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
}
