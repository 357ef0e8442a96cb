package plan

import (
	"time"

	"github.com/google/uuid"
)

// JobScope is the extent of a generation job
type JobScope string

const (
	ScopeDay  JobScope = "day"
	ScopeWeek JobScope = "week"
)

// JobStatus is the lifecycle state of a generation job
type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobError   JobStatus = "error"
)

// CancelMarker is the fixed error text that distinguishes a user
// cancellation from a true failure. Both land in the error status.
const CancelMarker = "cancelled"

// Job is the persisted state machine wrapping multi-day generation.
// It is created running, mutated only by run and cancel, and terminal
// once done or error.
type Job struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	MemberID      *uuid.UUID // nil means family target
	Scope         JobScope
	Status        JobStatus
	ProgressTotal int
	ProgressDone  int
	LastDayKey    string
	ErrorText     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   *time.Time
}

// NewJob creates a running job for the given target and window size
func NewJob(userID uuid.UUID, memberID *uuid.UUID, scope JobScope, totalDays int) *Job {
	now := time.Now()
	return &Job{
		ID:            uuid.New(),
		UserID:        userID,
		MemberID:      memberID,
		Scope:         scope,
		Status:        JobRunning,
		ProgressTotal: totalDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsTerminal reports whether the job can no longer change state
func (j *Job) IsTerminal() bool {
	return j.Status == JobDone || j.Status == JobError
}

// IsCancelled reports whether the job was cancelled by its owner
func (j *Job) IsCancelled() bool {
	return j.Status == JobError && j.ErrorText == CancelMarker
}

// OwnedBy reports whether the job belongs to the given user
func (j *Job) OwnedBy(userID uuid.UUID) bool {
	return j.UserID == userID
}

// Advance records that the day loop is about to process a day key
func (j *Job) Advance(dayKey string, done int) error {
	if j.Status != JobRunning {
		return ErrJobNotRunning
	}
	j.ProgressDone = done
	j.LastDayKey = dayKey
	j.UpdatedAt = time.Now()
	return nil
}

// Complete transitions the job to done. A non-empty note records a
// partial-fill reason without turning the run into a failure.
func (j *Job) Complete(note string) error {
	if j.Status != JobRunning {
		return ErrJobNotRunning
	}
	now := time.Now()
	j.Status = JobDone
	j.ProgressDone = j.ProgressTotal
	j.ErrorText = note
	j.UpdatedAt = now
	j.CompletedAt = &now
	return nil
}

// Fail transitions the job to error with the given reason
func (j *Job) Fail(reason string) error {
	if j.IsTerminal() {
		return ErrJobTerminal
	}
	now := time.Now()
	j.Status = JobError
	j.ErrorText = reason
	j.UpdatedAt = now
	j.CompletedAt = &now
	return nil
}

// Cancel transitions a running job to error with the cancellation
// marker. Cancelling a job that is already terminal is a no-op.
func (j *Job) Cancel() error {
	if j.IsTerminal() {
		return nil
	}
	return j.Fail(CancelMarker)
}
