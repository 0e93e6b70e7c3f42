// Package models defines the tasks and time records tracked by netupi
package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle status of a task.
type Status string

const (
	NeedsAction Status = "needs_action"
	InProcess   Status = "in_process"
	Completed   Status = "completed"
	Archived    Status = "archived"
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case NeedsAction:
		return "Needs action"
	case InProcess:
		return "In process"
	case Completed:
		return "Completed"
	case Archived:
		return "Archived"
	}

	return string(s)
}

// Task is a unit of work that time is tracked against.
type Task struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Status        Status        `json:"status"`
	Color         string        `json:"color"`
	Tags          []string      `json:"tags"`
	Priority      int           `json:"priority"`
	WorkDuration  time.Duration `json:"work_duration"`
	BreakDuration time.Duration `json:"break_duration"`
	Seq           int           `json:"seq"`
}

// NewTask creates a task with a fresh id that needs action.
func NewTask(name string) Task {
	return Task{
		ID:     uuid.NewString(),
		Name:   name,
		Status: NeedsAction,
	}
}

// HasTag reports whether the task carries tag.
func (t *Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// TaskMap maps task ids to tasks.
type TaskMap map[string]Task

// TagSet is a sorted set of tag names.
type TagSet []string

// Tags collects the tags of every task that is not archived.
func (m TaskMap) Tags() TagSet {
	var tags TagSet

	for _, task := range m {
		if task.Status == Archived {
			continue
		}

		for _, tag := range task.Tags {
			if !slices.Contains(tags, tag) {
				tags = append(tags, tag)
			}
		}
	}

	slices.Sort(tags)

	return tags
}

// TimeRecord is a completed work interval [From, To) attributed to a task.
// From is unique across all records.
type TimeRecord struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	TaskID string    `json:"task_id"`
}

// Duration returns the length of the interval.
func (r TimeRecord) Duration() time.Duration {
	return r.To.Sub(r.From)
}

// Validate rejects intervals that do not end after they start.
func (r TimeRecord) Validate() error {
	if !r.To.After(r.From) {
		return ErrDegenerateInterval.Fmt(
			r.From.Format(time.RFC3339Nano),
			r.To.Format(time.RFC3339Nano),
		)
	}

	return nil
}
