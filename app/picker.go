package app

import (
	"github.com/charmbracelet/huh"

	"github.com/netupi/netupi/internal/models"
)

// trackable returns the tasks that can be picked for a new session.
func trackable(tasks models.TaskMap) []models.Task {
	var out []models.Task

	for _, task := range tasks {
		if task.Status == models.Archived || task.Status == models.Completed {
			continue
		}

		out = append(out, task)
	}

	sortTasks(out)

	return out
}

// pickTask asks the user to choose one of the trackable tasks.
func pickTask(tasks models.TaskMap) (models.Task, error) {
	candidates := trackable(tasks)
	if len(candidates) == 0 {
		return models.Task{}, errNoTasks
	}

	options := make([]huh.Option[string], 0, len(candidates))
	for _, task := range candidates {
		options = append(options, huh.NewOption(task.Name, task.ID))
	}

	var id string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which task are you working on?").
				Options(options...).
				Value(&id),
		),
	).Run()
	if err != nil {
		return models.Task{}, err
	}

	return tasks[id], nil
}
