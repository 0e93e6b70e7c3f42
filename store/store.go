// Package store persists tasks and time records
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/timeutil"
)

const (
	taskBucket   = "tasks"
	recordBucket = "records"
	killedBucket = "killed"
	metaBucket   = "meta"
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) LoadTasks() (models.TaskMap, models.TagSet, error) {
	tasks := make(models.TaskMap)

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(taskBucket)).ForEach(func(_, v []byte) error {
			var task models.Task

			if err := json.Unmarshal(v, &task); err != nil {
				return err
			}

			tasks[task.ID] = task

			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}

	return tasks, tasks.Tags(), nil
}

func (c *Client) SaveTask(task *models.Task) error {
	value, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(taskBucket)).Put([]byte(task.ID), value)
	})
}

func (c *Client) LoadRecords(from, to time.Time) ([]models.TimeRecord, error) {
	var recs []models.TimeRecord

	err := c.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket([]byte(recordBucket)).Cursor()
		lo := timeutil.ToKey(from)

		var hi []byte
		if !to.IsZero() {
			hi = timeutil.ToKey(to)
		}

		for k, v := cur.Seek(lo); k != nil; k, v = cur.Next() {
			if hi != nil && bytes.Compare(k, hi) >= 0 {
				break
			}

			var rec models.TimeRecord

			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			recs = append(recs, rec)
		}

		return nil
	})

	return recs, err
}

func (c *Client) LoadKilled() ([]models.TimeRecord, error) {
	var recs []models.TimeRecord

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(killedBucket)).ForEach(func(_, v []byte) error {
			var rec models.TimeRecord

			if err := json.Unmarshal(v, &rec); err != nil {
				return err
			}

			recs = append(recs, rec)

			return nil
		})
	})

	return recs, err
}

func (c *Client) AppendRecord(rec models.TimeRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	key := timeutil.ToKey(rec.From)

	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(killedBucket)).Delete(key); err != nil {
			return err
		}

		return tx.Bucket([]byte(recordBucket)).Put(key, value)
	})
}

func (c *Client) RemoveRecord(from time.Time) error {
	key := timeutil.ToKey(from)

	return c.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket([]byte(recordBucket))

		value := records.Get(key)
		if value == nil {
			if tx.Bucket([]byte(killedBucket)).Get(key) != nil {
				return nil
			}

			return ErrRecordNotFound.Fmt(from.UTC().Format(time.RFC3339Nano))
		}

		// value is only valid for the life of the transaction
		if err := tx.Bucket([]byte(killedBucket)).Put(key, bytes.Clone(value)); err != nil {
			return err
		}

		return records.Delete(key)
	})
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// IsLocked reports whether another process holds the database at dbPath.
func IsLocked(dbPath string) bool {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{
		Timeout:  100 * time.Millisecond,
		ReadOnly: true,
	})
	if err != nil {
		return errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout)
	}

	_ = db.Close()

	return false
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{db}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{taskBucket, recordBucket, killedBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return c.migrate(tx)
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}
