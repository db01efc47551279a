package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskStatus defines the possible states of a task.
type TaskStatus string

const (
	TaskStatusStarted   TaskStatus = "started"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// maxFinishedTasks bounds how many finished tasks are remembered.
const maxFinishedTasks = 64

// Task represents an asynchronous site map reload.
type Task struct {
	ID              string     `json:"id"`
	Status          TaskStatus `json:"status"`
	ProgressMessage string     `json:"progress_message,omitempty"`
	Error           string     `json:"error,omitempty"`
	FinishedAt      time.Time  `json:"finished_at,omitzero"`
	mu              sync.RWMutex
}

// TaskSnapshot is a copy of a Task safe to serialize.
type TaskSnapshot struct {
	ID              string     `json:"id"`
	Status          TaskStatus `json:"status"`
	ProgressMessage string     `json:"progress_message,omitempty"`
	Error           string     `json:"error,omitempty"`
	FinishedAt      time.Time  `json:"finished_at,omitzero"`
}

// TaskManager tracks asynchronous tasks.
type TaskManager struct {
	tasks    map[string]*Task
	finished []string
	mu       sync.RWMutex
}

// NewTaskManager creates a new task manager.
func NewTaskManager() *TaskManager {
	return &TaskManager{
		tasks: make(map[string]*Task),
	}
}

// NewTask creates a new task, registers it, and returns it.
func (tm *TaskManager) NewTask() *Task {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	task := &Task{
		ID:     uuid.New().String(),
		Status: TaskStatusStarted,
	}
	tm.tasks[task.ID] = task
	return task
}

// GetTask safely retrieves a task by its ID.
func (tm *TaskManager) GetTask(id string) (*Task, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	task, found := tm.tasks[id]
	return task, found
}

// Finish records the outcome of task and forgets the oldest finished
// tasks beyond maxFinishedTasks.
func (tm *TaskManager) Finish(task *Task, err error) {
	if err != nil {
		task.SetError(err)
	} else {
		task.SetStatus(TaskStatusCompleted)
	}

	task.mu.Lock()
	task.FinishedAt = time.Now()
	task.mu.Unlock()

	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.finished = append(tm.finished, task.ID)
	for len(tm.finished) > maxFinishedTasks {
		delete(tm.tasks, tm.finished[0])
		tm.finished = tm.finished[1:]
	}
}

// --- Methods for updating a Task ---

// SetStatus updates the status of the task.
func (t *Task) SetStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = status
}

// SetError marks the task as failed and records the error message.
func (t *Task) SetError(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Status = TaskStatusFailed
	t.Error = err.Error()
}

// SetProgress updates the progress message for the task.
func (t *Task) SetProgress(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ProgressMessage = message
}

// Snapshot returns a consistent copy of the task.
func (t *Task) Snapshot() TaskSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return TaskSnapshot{
		ID:              t.ID,
		Status:          t.Status,
		ProgressMessage: t.ProgressMessage,
		Error:           t.Error,
		FinishedAt:      t.FinishedAt,
	}
}
