package rest

import "task-tracker/tracker/core"

type TaskOut struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type TaskMutationOut struct {
	Message string  `json:"message"`
	Task    TaskOut `json:"task"`
}

type MessageOut struct {
	Message string `json:"message"`
}

func TaskFromCore(t core.Task) TaskOut {
	return TaskOut{ID: t.ID, Name: t.Name, Completed: t.Completed}
}

func TasksFromCore(items []core.Task) []TaskOut {
	out := make([]TaskOut, 0, len(items))
	for _, t := range items {
		out = append(out, TaskFromCore(t))
	}
	return out
}

// Page data for the HTML templates.
type FormPage struct {
	Error    string
	Username string
	Email    string
}

type DashboardPage struct {
	Username string
}
