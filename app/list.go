package app

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"

	"github.com/netupi/netupi/internal/aggregate"
	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/timeutil"
	"github.com/netupi/netupi/internal/tracker"
	"github.com/netupi/netupi/internal/ui"
)

const (
	noTasksMsg   = "No tasks found. Create one with 'netupi task add NAME'"
	noRecordsMsg = "No time records found for the specified time range"
	dateFormat   = "Jan 02, 2006"
)

// sortTasks orders tasks by descending priority, then by name in natural
// order so that "Task 2" sorts before "Task 10".
func sortTasks(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority > tasks[j].Priority
		}

		if tasks[i].Name != tasks[j].Name {
			return natural.Less(tasks[i].Name, tasks[j].Name)
		}

		return tasks[i].ID < tasks[j].ID
	})
}

// selectTasks returns the tasks in display order. Archived tasks are left
// out unless all is set. A non-empty tag keeps only the tasks carrying it.
func selectTasks(tasks models.TaskMap, all bool, tag string) []models.Task {
	out := make([]models.Task, 0, len(tasks))

	for _, task := range tasks {
		if task.Status == models.Archived && !all {
			continue
		}

		if tag != "" && !task.HasTag(tag) {
			continue
		}

		out = append(out, task)
	}

	sortTasks(out)

	return out
}

func durationCells(d aggregate.Durations) []string {
	return []string{
		timeutil.FormatDuration(d.Day),
		timeutil.FormatDuration(d.Week),
		timeutil.FormatDuration(d.Month),
		timeutil.FormatDuration(d.Year),
		timeutil.FormatDuration(d.Total),
	}
}

// taskTable builds the rows of the task listing.
func taskTable(
	tasks []models.Task,
	durations func(string) aggregate.Durations,
) [][]string {
	data := [][]string{
		{"#", "NAME", "STATUS", "TAGS", "PRIORITY", "TODAY", "TOTAL"},
	}

	for i, task := range tasks {
		d := durations(task.ID)

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			task.Name,
			ui.Status(task.Status),
			strings.Join(task.Tags, " · "),
			fmt.Sprintf("%d", task.Priority),
			timeutil.FormatDuration(d.Day),
			timeutil.FormatDuration(d.Total),
		})
	}

	return data
}

// statsTable builds one row per task that has tracked time, followed by the
// totals across every task.
func statsTable(
	tasks []models.Task,
	durations func(string) aggregate.Durations,
	all aggregate.Durations,
) [][]string {
	data := [][]string{
		{"TASK", "TODAY", "WEEK", "MONTH", "YEAR", "TOTAL"},
	}

	for _, task := range tasks {
		d := durations(task.ID)
		if d.Total == 0 {
			continue
		}

		data = append(data, append([]string{task.Name}, durationCells(d)...))
	}

	return append(data, append([]string{ui.Highlight("ALL")}, durationCells(all)...))
}

// logRow is one time record as shown by the log command.
type logRow struct {
	Key    string
	Task   string
	From   time.Time
	To     time.Time
	Killed bool
}

// logRows returns the records that start at or after since, optionally
// restricted to taskID. Killed records are included and flagged.
func logRows(m *tracker.Model, since time.Time, taskID string) []logRow {
	var rows []logRow

	for _, rec := range m.Ledger.Range(since, time.Time{}) {
		if taskID != "" && rec.TaskID != taskID {
			continue
		}

		name := rec.TaskID
		if task, ok := m.Tasks[rec.TaskID]; ok {
			name = task.Name
		}

		rows = append(rows, logRow{
			Key:    string(timeutil.ToKey(rec.From)),
			Task:   name,
			From:   rec.From,
			To:     rec.To,
			Killed: m.Ledger.Killed(rec.From),
		})
	}

	return rows
}

func (r logRow) cells(timeFormat string, loc *time.Location) []string {
	state := "live"
	if r.Killed {
		state = "killed"
	}

	layout := dateFormat + " " + timeFormat

	return []string{
		r.Key,
		r.Task,
		r.From.In(loc).Format(layout),
		r.To.In(loc).Format(timeFormat),
		timeutil.FormatDuration(r.To.Sub(r.From)),
		state,
	}
}

// writeLogPlain prints one tab-separated line per record.
func writeLogPlain(w io.Writer, rows []logRow, timeFormat string, loc *time.Location) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(r.cells(timeFormat, loc), "\t")); err != nil {
			return err
		}
	}

	return nil
}

// printLogTable prints the records as a table, dimming killed ones.
func printLogTable(w io.Writer, rows []logRow, timeFormat string, loc *time.Location) error {
	data := [][]string{
		{"KEY", "TASK", "FROM", "TO", "DURATION", "STATE"},
	}

	for _, r := range rows {
		cells := r.cells(timeFormat, loc)

		if r.Killed {
			for i := range cells {
				cells[i] = ui.Dim(cells[i])
			}
		}

		data = append(data, cells)
	}

	return ui.PrintTable(data, w)
}
