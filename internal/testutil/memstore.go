package testutil

import (
	"slices"
	"time"

	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/store"
)

// MemStore is an in-memory store.DB. Setting Err makes every write fail with
// it while the data is left unchanged.
type MemStore struct {
	Tasks   models.TaskMap
	Records map[int64]models.TimeRecord
	Killed  map[int64]models.TimeRecord
	Err     error
	Writes  int
}

var _ store.DB = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		Tasks:   make(models.TaskMap),
		Records: make(map[int64]models.TimeRecord),
		Killed:  make(map[int64]models.TimeRecord),
	}
}

func sorted(m map[int64]models.TimeRecord) []models.TimeRecord {
	recs := make([]models.TimeRecord, 0, len(m))
	for _, rec := range m {
		recs = append(recs, rec)
	}

	slices.SortFunc(recs, func(a, b models.TimeRecord) int {
		return a.From.Compare(b.From)
	})

	return recs
}

func (m *MemStore) LoadTasks() (models.TaskMap, models.TagSet, error) {
	tasks := make(models.TaskMap, len(m.Tasks))
	for id, task := range m.Tasks {
		tasks[id] = task
	}

	return tasks, tasks.Tags(), nil
}

func (m *MemStore) LoadRecords(from, to time.Time) ([]models.TimeRecord, error) {
	var recs []models.TimeRecord

	for _, rec := range sorted(m.Records) {
		if rec.From.Before(from) || (!to.IsZero() && !rec.From.Before(to)) {
			continue
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

func (m *MemStore) LoadKilled() ([]models.TimeRecord, error) {
	return sorted(m.Killed), nil
}

func (m *MemStore) AppendRecord(rec models.TimeRecord) error {
	m.Writes++

	if m.Err != nil {
		return m.Err
	}

	delete(m.Killed, rec.From.UnixNano())
	m.Records[rec.From.UnixNano()] = rec

	return nil
}

func (m *MemStore) RemoveRecord(from time.Time) error {
	m.Writes++

	if m.Err != nil {
		return m.Err
	}

	k := from.UnixNano()

	rec, ok := m.Records[k]
	if !ok {
		return nil
	}

	delete(m.Records, k)
	m.Killed[k] = rec

	return nil
}

func (m *MemStore) SaveTask(task *models.Task) error {
	m.Writes++

	if m.Err != nil {
		return m.Err
	}

	m.Tasks[task.ID] = *task

	return nil
}

func (m *MemStore) Close() error {
	return nil
}
