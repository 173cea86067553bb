package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/branchbuddy/branchbuddy/internal/audit"
	"github.com/branchbuddy/branchbuddy/internal/shared"
	"github.com/branchbuddy/branchbuddy/internal/users"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeRecordLogin is the task type for post-login bookkeeping.
	TaskTypeRecordLogin = "auth:record_login"
)

// RecordLoginPayload describes a successful login to record.
type RecordLoginPayload struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	At        time.Time `json:"at"`
}

// NewRecordLoginTask constructs an Asynq task.
func NewRecordLoginTask(payload RecordLoginPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRecordLogin, data), nil
}

// RecordLoginJob stamps last_login_at and writes the success event to the
// auth trail.
type RecordLoginJob struct {
	Users  *users.Service
	Audit  *audit.Service
	Logger *slog.Logger
}

// NewRecordLoginJob initialises the record-login handler.
func NewRecordLoginJob(userSvc *users.Service, auditSvc *audit.Service, logger *slog.Logger) *RecordLoginJob {
	return &RecordLoginJob{Users: userSvc, Audit: auditSvc, Logger: logger}
}

// Handle processes TaskTypeRecordLogin tasks. A user deleted between login
// and processing is not worth retrying.
func (j *RecordLoginJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("record login: handler not configured")
	}
	var payload RecordLoginPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	if err := j.Users.UpdateLastLogin(ctx, payload.UserID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			j.Logger.Warn("record login for vanished user",
				slog.Int64("user_id", payload.UserID))
			return asynq.SkipRetry
		}
		return err
	}

	if j.Audit != nil {
		err := j.Audit.Record(ctx, audit.Event{
			UserID:    &payload.UserID,
			Email:     payload.Email,
			Action:    audit.ActionLoginSucceeded,
			IP:        payload.IP,
			UserAgent: payload.UserAgent,
		})
		if err != nil {
			return err
		}
	}

	j.Logger.Info("recorded login",
		slog.Int64("user_id", payload.UserID),
		slog.String("email", payload.Email))
	return nil
}
