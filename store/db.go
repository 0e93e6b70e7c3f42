package store

import (
	"time"

	"github.com/netupi/netupi/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// LoadTasks returns every saved task and the tags in use
	LoadTasks() (models.TaskMap, models.TagSet, error)
	// LoadRecords returns the live records whose start time is in [from, to).
	// A zero to means no upper bound.
	LoadRecords(from, to time.Time) ([]models.TimeRecord, error)
	// LoadKilled returns the records that have been removed
	LoadKilled() ([]models.TimeRecord, error)
	// AppendRecord stores a record, restoring it if it was removed
	AppendRecord(rec models.TimeRecord) error
	// RemoveRecord takes the record starting at from out of the live set
	// without destroying it
	RemoveRecord(from time.Time) error
	// SaveTask creates or overwrites a task
	SaveTask(task *models.Task) error
	// Close ends the database connection
	Close() error
}
