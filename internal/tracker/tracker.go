// Package tracker implements the session state machine: it starts, pauses,
// resumes and stops work on a task, turns finished work intervals into time
// records and keeps the aggregates current.
//
// A Controller is not safe for concurrent use. Commands and timer expiries
// must be delivered from a single goroutine.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/netupi/netupi/internal/aggregate"
	"github.com/netupi/netupi/internal/clock"
	"github.com/netupi/netupi/internal/ledger"
	"github.com/netupi/netupi/internal/models"
	"github.com/netupi/netupi/internal/notify"
	"github.com/netupi/netupi/internal/timeutil"
	"github.com/netupi/netupi/store"
)

const (
	DefaultWorkDuration  = 50 * time.Minute
	DefaultBreakDuration = 10 * time.Minute
)

// Model is the whole tracking state owned by a Controller.
type Model struct {
	Tasks  models.TaskMap
	Tags   models.TagSet
	Ledger *ledger.Ledger
	Agg    *aggregate.Aggregator
	Ctx    Context
}

// Controller drives a Model in response to commands and timer expiries.
type Controller struct {
	model    Model
	db       store.DB
	clock    clock.Clock
	timers   clock.Timers
	notifier notify.Notifier
	diag     func(error)

	workDuration  time.Duration
	breakDuration time.Duration
	workSound     string
	breakSound    string
}

// Option configures a Controller.
type Option func(*Controller)

// WithDiagnostics sets the sink for non-fatal errors such as failed writes.
func WithDiagnostics(fn func(error)) Option {
	return func(c *Controller) {
		c.diag = fn
	}
}

// WithNotifier sets the effect used at the end of each work or break.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithDurations sets the durations used by tasks that do not set their own.
func WithDurations(work, brk time.Duration) Option {
	return func(c *Controller) {
		if work > 0 {
			c.workDuration = work
		}

		if brk > 0 {
			c.breakDuration = brk
		}
	}
}

// WithSounds sets the clips played when work and break sessions finish.
func WithSounds(work, brk string) Option {
	return func(c *Controller) {
		c.workSound = work
		c.breakSound = brk
	}
}

// New loads tasks and records from db and returns an inactive controller.
func New(
	db store.DB,
	clk clock.Clock,
	timers clock.Timers,
	opts ...Option,
) (*Controller, error) {
	c := &Controller{
		db:            db,
		clock:         clk,
		timers:        timers,
		notifier:      notify.Nop{},
		workDuration:  DefaultWorkDuration,
		breakDuration: DefaultBreakDuration,
		diag: func(err error) {
			slog.Warn("tracker diagnostic", slog.Any("error", err))
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	tasks, tags, err := db.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	live, err := db.LoadRecords(time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("loading time records: %w", err)
	}

	killed, err := db.LoadKilled()
	if err != nil {
		return nil, fmt.Errorf("loading killed records: %w", err)
	}

	l, _ := ledger.New()

	for _, rec := range live {
		if err := l.Insert(rec); err != nil {
			c.diag(fmt.Errorf("skipping stored record: %w", err))
		}
	}

	for _, rec := range killed {
		if err := l.Insert(rec); err != nil {
			c.diag(fmt.Errorf("skipping killed record: %w", err))
			continue
		}

		if _, err := l.Kill(rec.From); err != nil {
			return nil, err
		}
	}

	c.model = Model{
		Tasks:  tasks,
		Tags:   tags,
		Ledger: l,
		Agg:    aggregate.New(l),
		Ctx:    Context{State: inactive()},
	}

	slog.Debug(
		"tracker loaded",
		slog.Int("tasks", len(tasks)),
		slog.Int("records", l.Len()),
		slog.Int("killed", len(killed)),
	)

	return c, nil
}

// Model returns the controller's model. It must not be modified.
func (c *Controller) Model() *Model {
	return &c.model
}

// Context returns the current tracking context.
func (c *Controller) Context() Context {
	return c.model.Ctx
}

// Task looks up a task by id.
func (c *Controller) Task(id string) (models.Task, bool) {
	task, ok := c.model.Tasks[id]
	return task, ok
}

// WorkDuration is the work target of task.
func (c *Controller) WorkDuration(task *models.Task) time.Duration {
	if task.WorkDuration > 0 {
		return task.WorkDuration
	}

	return c.workDuration
}

// BreakDuration is the break target of task.
func (c *Controller) BreakDuration(task *models.Task) time.Duration {
	if task.BreakDuration > 0 {
		return task.BreakDuration
	}

	return c.breakDuration
}

func (c *Controller) persist(op string, err error) {
	if err == nil {
		return
	}

	c.diag(&PersistenceError{Op: op, Err: err})
}

func (c *Controller) lookup(id string) (models.Task, error) {
	task, ok := c.model.Tasks[id]
	if !ok {
		return task, ErrUnknownTask.Fmt(id)
	}

	return task, nil
}

// Start begins a work session on taskID. Starting while another task is
// active stops that task first.
func (c *Controller) Start(taskID string) error {
	task, err := c.lookup(taskID)
	if err != nil {
		return err
	}

	st := c.model.Ctx.State

	switch st.Phase {
	case Inactive:
	case Active:
		if st.TaskID == taskID {
			return &TransitionError{Command: "start", State: st}
		}

		c.stopActive()
	default:
		return &TransitionError{Command: "start", State: st}
	}

	now := c.clock.Now()

	c.model.Ctx = Context{
		State:   engaged(Active, taskID),
		Since:   now,
		Elapsed: 0,
		Timer:   c.timers.Arm(c.WorkDuration(&task)),
	}

	if task.Status == models.NeedsAction || task.Status == models.Completed {
		task.Status = models.InProcess
		c.saveTask(task)
	}

	slog.Info(
		"work session started",
		slog.String("task_id", taskID),
		slog.Time("since", now),
	)

	return nil
}

// Pause records the work done so far and stops the timer.
func (c *Controller) Pause() error {
	st := c.model.Ctx.State
	if st.Phase != Active {
		return &TransitionError{Command: "pause", State: st}
	}

	now := c.clock.Now()
	c.cancelTimer()

	c.model.Ctx.Elapsed += c.finishInterval(st.TaskID, now)
	c.model.Ctx.State = engaged(Paused, st.TaskID)
	c.model.Ctx.Since = now

	slog.Info(
		"work session paused",
		slog.String("task_id", st.TaskID),
		slog.Duration("elapsed", c.model.Ctx.Elapsed),
	)

	return nil
}

// Resume continues a paused session for the rest of its work target.
func (c *Controller) Resume() error {
	st := c.model.Ctx.State
	if st.Phase != Paused {
		return &TransitionError{Command: "resume", State: st}
	}

	task := c.model.Tasks[st.TaskID]
	remaining := max(c.WorkDuration(&task)-c.model.Ctx.Elapsed, 0)

	c.model.Ctx.State = engaged(Active, st.TaskID)
	c.model.Ctx.Since = c.clock.Now()
	c.model.Ctx.Timer = c.timers.Arm(remaining)

	slog.Info(
		"work session resumed",
		slog.String("task_id", st.TaskID),
		slog.Duration("remaining", remaining),
	)

	return nil
}

// Stop ends the session in any engaged phase.
func (c *Controller) Stop() error {
	st := c.model.Ctx.State

	switch st.Phase {
	case Active:
		c.stopActive()
	case Paused:
		c.cancelTimer()
		c.model.Ctx = Context{State: inactive()}
	case Break:
		c.cancelTimer()
		c.model.Ctx = Context{State: inactive()}
		c.breakFinished(st.TaskID)
	default:
		return &TransitionError{Command: "stop", State: st}
	}

	slog.Info("session stopped", slog.String("task_id", st.TaskID))

	return nil
}

// Fire handles the expiry of timer id. It reports false for an expiry that
// does not belong to the armed timer, which is ignored.
func (c *Controller) Fire(id clock.TimerID) bool {
	if id == 0 || id != c.model.Ctx.Timer {
		slog.Debug("ignoring stale timer", slog.Uint64("timer_id", uint64(id)))
		return false
	}

	st := c.model.Ctx.State
	now := c.clock.Now()

	switch st.Phase {
	case Active:
		task := c.model.Tasks[st.TaskID]

		c.finishInterval(st.TaskID, now)

		c.model.Ctx = Context{
			State: engaged(Break, st.TaskID),
			Since: now,
			Timer: c.timers.Arm(c.BreakDuration(&task)),
		}

		c.notifier.Notify(
			"Work session is finished",
			fmt.Sprintf("Take a break from '%s'", task.Name),
		)
		c.notifier.PlaySound(c.workSound)

		slog.Info("work session finished", slog.String("task_id", st.TaskID))
	case Break:
		c.model.Ctx = Context{State: inactive()}
		c.breakFinished(st.TaskID)

		slog.Info("break finished", slog.String("task_id", st.TaskID))
	default:
		return false
	}

	return true
}

func (c *Controller) breakFinished(taskID string) {
	task := c.model.Tasks[taskID]

	c.notifier.Notify(
		"Break is over",
		fmt.Sprintf("Ready to get back to '%s'?", task.Name),
	)
	c.notifier.PlaySound(c.breakSound)
}

// stopActive ends an active session and records its last interval.
func (c *Controller) stopActive() {
	st := c.model.Ctx.State

	c.cancelTimer()
	c.finishInterval(st.TaskID, c.clock.Now())
	c.model.Ctx = Context{State: inactive()}
}

func (c *Controller) cancelTimer() {
	if c.model.Ctx.Timer != 0 {
		c.timers.Cancel(c.model.Ctx.Timer)
	}

	c.model.Ctx.Timer = 0
}

// finishInterval records [Since, now) for taskID and returns its length. An
// empty interval is not recorded.
func (c *Controller) finishInterval(taskID string, now time.Time) time.Duration {
	rec := models.TimeRecord{
		From:   c.model.Ctx.Since,
		To:     now,
		TaskID: taskID,
	}

	if err := rec.Validate(); err != nil {
		slog.Debug("discarding empty interval", slog.Any("error", err))
		return 0
	}

	if err := c.model.Ledger.Insert(rec); err != nil {
		c.diag(err)
		return 0
	}

	c.model.Agg.Append(rec)
	c.persist("save time record", c.db.AppendRecord(rec))

	return rec.Duration()
}

func (c *Controller) saveTask(task models.Task) {
	c.model.Tasks[task.ID] = task
	c.model.Tags = c.model.Tasks.Tags()

	c.persist("save task", c.db.SaveTask(&task))
}

// setStatus stops the session if it is engaged with taskID and sets the
// task's status.
func (c *Controller) setStatus(taskID string, status models.Status) error {
	task, err := c.lookup(taskID)
	if err != nil {
		return err
	}

	if st := c.model.Ctx.State; st.TaskID == taskID && st.Phase != Inactive {
		if err := c.Stop(); err != nil {
			return err
		}
	}

	task.Status = status
	task.Seq++
	c.saveTask(task)

	return nil
}

// MarkCompleted completes a task, stopping its session if it has one.
func (c *Controller) MarkCompleted(taskID string) error {
	return c.setStatus(taskID, models.Completed)
}

// Archive archives a task, stopping its session if it has one.
func (c *Controller) Archive(taskID string) error {
	return c.setStatus(taskID, models.Archived)
}

// Kill excludes the record starting at from from every aggregate.
func (c *Controller) Kill(from time.Time) (models.TimeRecord, error) {
	rec, err := c.model.Ledger.Kill(from)
	if err != nil {
		return rec, err
	}

	c.model.Agg.Rebuild(rec.TaskID)
	c.persist("remove time record", c.db.RemoveRecord(rec.From))

	return rec, nil
}

// Restore reverses Kill.
func (c *Controller) Restore(from time.Time) (models.TimeRecord, error) {
	rec, err := c.model.Ledger.Restore(from)
	if err != nil {
		return rec, err
	}

	c.model.Agg.Rebuild(rec.TaskID)
	c.persist("restore time record", c.db.AppendRecord(rec))

	return rec, nil
}

// AddTask registers a new task.
func (c *Controller) AddTask(task models.Task) error {
	if task.ID == "" {
		return errTaskWithoutID.Fmt(task.Name)
	}

	if task.Status == "" {
		task.Status = models.NeedsAction
	}

	c.saveTask(task)

	return nil
}

// UpdateTask replaces an existing task and bumps its edit sequence.
func (c *Controller) UpdateTask(task models.Task) error {
	old, err := c.lookup(task.ID)
	if err != nil {
		return err
	}

	task.Seq = old.Seq + 1
	c.saveTask(task)

	return nil
}

// Import adds tasks and records produced outside of a session. Records that
// reference an unknown task or collide with an existing record are skipped
// and reported in the returned error. It returns the number of records
// imported.
func (c *Controller) Import(tasks models.TaskMap, recs []models.TimeRecord) (int, error) {
	var errs []error

	for _, task := range tasks {
		if err := c.AddTask(task); err != nil {
			errs = append(errs, err)
		}
	}

	affected := make(map[string]struct{})

	var n int

	for _, rec := range recs {
		if _, ok := c.model.Tasks[rec.TaskID]; !ok {
			errs = append(errs, ErrUnknownTask.Fmt(rec.TaskID))
			continue
		}

		if err := c.model.Ledger.Insert(rec); err != nil {
			errs = append(errs, err)
			continue
		}

		c.persist("save time record", c.db.AppendRecord(rec))

		affected[rec.TaskID] = struct{}{}
		n++
	}

	for id := range affected {
		c.model.Agg.Rebuild(id)
	}

	slog.Info("records imported", slog.Int("count", n), slog.Int("failed", len(errs)))

	return n, errors.Join(errs...)
}

// Progress reports the elapsed time of the current phase against its target.
func (c *Controller) Progress(now time.Time) Progress {
	ctx := c.model.Ctx
	task := c.model.Tasks[ctx.State.TaskID]

	p := Progress{Phase: ctx.State.Phase, TaskID: ctx.State.TaskID}

	switch ctx.State.Phase {
	case Active:
		p.Elapsed = ctx.Elapsed + now.Sub(ctx.Since)
		p.Target = c.WorkDuration(&task)
	case Paused:
		p.Elapsed = ctx.Elapsed
		p.Target = c.WorkDuration(&task)
	case Break:
		p.Elapsed = now.Sub(ctx.Since)
		p.Target = c.BreakDuration(&task)
	}

	return p
}

// StatusLine renders the session for a status bar, for example
// "Active: 'Write' | Elapsed: 12m / 50m". It is empty when inactive.
func (c *Controller) StatusLine(now time.Time) string {
	p := c.Progress(now)
	if p.Phase == Inactive {
		return ""
	}

	return fmt.Sprintf(
		"%s: '%s' | Elapsed: %s / %s",
		p.Phase,
		c.model.Tasks[p.TaskID].Name,
		timeutil.FormatDuration(p.Elapsed),
		timeutil.FormatDuration(p.Target),
	)
}

// Durations returns the time spent on taskID since each calendar boundary.
func (c *Controller) Durations(taskID string, now time.Time) aggregate.Durations {
	return c.model.Agg.Durations(taskID, now)
}

// DurationsAll returns the time spent on every task since each boundary.
func (c *Controller) DurationsAll(now time.Time) aggregate.Durations {
	return c.model.Agg.DurationsAll(now)
}
