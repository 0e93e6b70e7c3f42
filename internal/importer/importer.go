// Package importer reads time records exported as CSV.
//
// Each row holds the finish time, the length in minutes and the task name:
//
//	finish,minutes,name
//	2021-10-05-19-18,50,Work
//
// Finish times are in UTC. The first row is a header and is skipped.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/netupi/netupi/internal/models"
)

// FinishLayout is the layout of the finish column.
const FinishLayout = "2006-01-02-15-04"

const fieldsPerRow = 3

// maxMinutes is the longest duration that fits in a time.Duration.
const maxMinutes = math.MaxInt64 / int64(time.Minute)

// RowError reports a row that could not be imported.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Parse reads every row from r. Rows naming a task in known are attributed to
// it; other names create new tasks, which are returned alongside the records.
func Parse(r io.Reader, known models.TaskMap) (models.TaskMap, []models.TimeRecord, error) {
	byName := make(map[string]string, len(known))
	for id, task := range known {
		byName[task.Name] = id
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = fieldsPerRow
	reader.TrimLeadingSpace = true

	created := make(models.TaskMap)

	var recs []models.TimeRecord

	for header := true; ; header = false {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var (
				parseErr *csv.ParseError
				line     int
			)

			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}

			return nil, nil, &RowError{Line: line, Err: err}
		}

		line, _ := reader.FieldPos(0)

		if header {
			continue
		}

		rec, name, err := parseRow(row)
		if err != nil {
			return nil, nil, &RowError{Line: line, Err: err}
		}

		id, ok := byName[name]
		if !ok {
			task := models.NewTask(name)
			id = task.ID
			byName[name] = id
			created[id] = task
		}

		rec.TaskID = id
		recs = append(recs, rec)
	}

	return created, recs, nil
}

func parseRow(row []string) (models.TimeRecord, string, error) {
	var rec models.TimeRecord

	to, err := time.ParseInLocation(FinishLayout, strings.TrimSpace(row[0]), time.UTC)
	if err != nil {
		return rec, "", errInvalidFinish.Fmt(row[0]).Wrap(err)
	}

	minutes, err := strconv.ParseInt(strings.TrimSpace(row[1]), 10, 64)
	if err != nil {
		return rec, "", errInvalidMinutes.Fmt(row[1]).Wrap(err)
	}

	if minutes <= 0 || minutes > maxMinutes {
		return rec, "", errInvalidMinutes.Fmt(row[1])
	}

	name := strings.TrimSpace(row[2])
	if name == "" {
		return rec, "", errEmptyName
	}

	rec = models.TimeRecord{
		From: to.Add(-time.Duration(minutes) * time.Minute),
		To:   to,
	}

	if err := rec.Validate(); err != nil {
		return rec, "", err
	}

	return rec, name, nil
}
