// internal/models/task.go
package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPendente    TaskStatus = "PENDENTE"
	StatusEmAndamento TaskStatus = "EM_ANDAMENTO"
	StatusConcluida   TaskStatus = "CONCLUIDA"
)

// BoardColumns lists the statuses in Kanban column order.
var BoardColumns = []TaskStatus{StatusPendente, StatusEmAndamento, StatusConcluida}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPendente, StatusEmAndamento, StatusConcluida:
		return true
	}
	return false
}

// UserRef is the eager-loaded {id, name} view of a user.
type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProjetoRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Task represents the structure of a task in the system.
type Task struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Status       TaskStatus `json:"status"`
	Priority     int        `json:"priority"`
	DueDate      *time.Time `json:"dueDate"`
	AuthorID     int64      `json:"authorId"`
	AssignedToID int64      `json:"assignedToId"`
	ProjetoID    *int64     `json:"projetoId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Author     *UserRef    `json:"author,omitempty"`
	AssignedTo *UserRef    `json:"assignedTo,omitempty"`
	Projeto    *ProjetoRef `json:"projeto,omitempty"`
}

// TaskDetail is a task together with its comments and files.
type TaskDetail struct {
	Task
	Comments []Comment `json:"comments"`
	Files    []File    `json:"files"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	ProjetoID    *int64
	AssignedToID *int64
	Status       *TaskStatus
}

// TaskPatch carries the fields of a partial update. Nil fields are left
// unchanged; ClearX flags reset the nullable columns.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *TaskStatus
	Priority         *int
	DueDate          *time.Time
	ClearDueDate     bool
	AssignedToID     *int64
	ProjetoID        *int64
	ClearProjeto     bool
}

// GroupByStatus splits a flat task list into Kanban columns, keeping the
// input order inside each column.
func GroupByStatus(tasks []Task) map[TaskStatus][]Task {
	out := make(map[TaskStatus][]Task, len(BoardColumns))
	for _, st := range BoardColumns {
		out[st] = []Task{}
	}
	for _, t := range tasks {
		out[t.Status] = append(out[t.Status], t)
	}
	return out
}
