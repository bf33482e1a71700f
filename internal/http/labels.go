package http

import (
	"fmt"
	"html/template"
	"time"

	"task-manager.com/task-manager/internal/constants"
	dto "task-manager.com/task-manager/internal/data_models"
)

var statusLabels = map[constants.TaskStatus]string{
	constants.StatusTodo:       "To Do",
	constants.StatusInProgress: "In Progress",
	constants.StatusDone:       "Done",
}

var priorityLabels = map[constants.TaskPriority]string{
	constants.PriorityLow:    "Low",
	constants.PriorityMedium: "Medium",
	constants.PriorityHigh:   "High",
}

// StatusLabel accepts a TaskStatus or its raw string form.
func StatusLabel(v interface{}) string {
	s := constants.TaskStatus(fmt.Sprint(v))
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func PriorityLabel(v interface{}) string {
	p := constants.TaskPriority(fmt.Sprint(v))
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dto.DateLayout)
}

func formatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"statusLabel":    StatusLabel,
		"priorityLabel":  PriorityLabel,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
	}
}
