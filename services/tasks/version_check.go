package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"blinno/models"

	"github.com/hibiken/asynq"
)

const (
	TypeVersionCheck = "onboarding:version-check"
	TypeVersionSweep = "onboarding:version-sweep"
)

// Sources of a version check.
const (
	TriggerSweep = "sweep"
	TriggerAdmin = "admin"
)

// NewVersionCheckTask builds the task for one seller. The task id is derived
// from the user and required version, so a seller is queued at most once per version.
func NewVersionCheckTask(payload models.VersionCheckPayload) (*asynq.Task, []asynq.Option, error) {
	if payload.UserID == "" {
		return nil, nil, fmt.Errorf("version check task requires a user id")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeVersionCheck, b)
	opts := []asynq.Option{
		asynq.TaskID(VersionCheckTaskID(payload.UserID, payload.RequiredVersion)),
		asynq.MaxRetry(5),
		asynq.Retention(24 * time.Hour),
	}

	return task, opts, nil
}

func VersionCheckTaskID(userID string, version int) string {
	return fmt.Sprintf("version-check:%s:v%d", userID, version)
}

// ParseVersionCheckPayload decodes a version check task payload.
func ParseVersionCheckPayload(task *asynq.Task) (models.VersionCheckPayload, error) {
	var p models.VersionCheckPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, err
	}
	if p.UserID == "" {
		return p, fmt.Errorf("payload has no user id")
	}
	return p, nil
}

// NewVersionSweepTask is the periodic task that fans out version checks.
func NewVersionSweepTask() *asynq.Task {
	return asynq.NewTask(TypeVersionSweep, nil, asynq.MaxRetry(1), asynq.Timeout(10*time.Minute))
}
