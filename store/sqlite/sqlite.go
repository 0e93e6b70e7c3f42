// Package sqlite is a store.DB backed by an SQLite database file.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id   TEXT PRIMARY KEY,
	data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS time_records (
	time     INTEGER PRIMARY KEY,
	duration INTEGER NOT NULL,
	uid      TEXT NOT NULL,
	killed   INTEGER NOT NULL DEFAULT 0
);
`

// Client stores records keyed by their start time in unix nanoseconds.
type Client struct {
	db *sql.DB
}

var _ store.DB = (*Client)(nil)

// NewClient opens or creates the database at path.
func NewClient(path string) (*Client, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=1000&_txlock=immediate")
	if err != nil {
		return nil, err
	}

	// a single connection serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) LoadTasks() (models.TaskMap, models.TagSet, error) {
	rows, err := c.db.Query(`SELECT data FROM tasks`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	tasks := make(models.TaskMap)

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, nil, err
		}

		var task models.Task
		if err := json.Unmarshal([]byte(data), &task); err != nil {
			return nil, nil, err
		}

		tasks[task.ID] = task
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return tasks, tasks.Tags(), nil
}

func (c *Client) SaveTask(task *models.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}

	_, err = c.db.Exec(
		`INSERT INTO tasks (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		task.ID, string(data),
	)

	return err
}

func (c *Client) loadRecords(query string, args ...any) ([]models.TimeRecord, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []models.TimeRecord

	for rows.Next() {
		var (
			from, duration int64
			uid            string
		)

		if err := rows.Scan(&from, &duration, &uid); err != nil {
			return nil, err
		}

		start := time.Unix(0, from).UTC()

		recs = append(recs, models.TimeRecord{
			From:   start,
			To:     start.Add(time.Duration(duration)),
			TaskID: uid,
		})
	}

	return recs, rows.Err()
}

func (c *Client) LoadRecords(from, to time.Time) ([]models.TimeRecord, error) {
	hi := int64(math.MaxInt64)
	if !to.IsZero() {
		hi = to.UnixNano()
	}

	lo := int64(math.MinInt64)
	if !from.IsZero() {
		lo = from.UnixNano()
	}

	return c.loadRecords(
		`SELECT time, duration, uid FROM time_records
		WHERE killed = 0 AND time >= ? AND time < ?
		ORDER BY time`,
		lo, hi,
	)
}

func (c *Client) LoadKilled() ([]models.TimeRecord, error) {
	return c.loadRecords(
		`SELECT time, duration, uid FROM time_records
		WHERE killed = 1 ORDER BY time`,
	)
}

func (c *Client) AppendRecord(rec models.TimeRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := c.db.Exec(
		`INSERT INTO time_records (time, duration, uid, killed) VALUES (?, ?, ?, 0)
		ON CONFLICT(time) DO UPDATE SET
			duration = excluded.duration, uid = excluded.uid, killed = 0`,
		rec.From.UnixNano(), int64(rec.Duration()), rec.TaskID,
	)

	return err
}

func (c *Client) RemoveRecord(from time.Time) error {
	var killed bool

	err := c.db.QueryRow(
		`SELECT killed FROM time_records WHERE time = ?`,
		from.UnixNano(),
	).Scan(&killed)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrRecordNotFound.Fmt(from.UTC().Format(time.RFC3339Nano))
	}

	if err != nil || killed {
		return err
	}

	_, err = c.db.Exec(
		`UPDATE time_records SET killed = 1 WHERE time = ?`,
		from.UnixNano(),
	)

	return err
}
