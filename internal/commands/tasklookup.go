package commands

import "realtodo/internal/service"

// findTask returns the task with id from a loaded list.
func findTask(tasks []service.Task, id service.TaskID) (service.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
