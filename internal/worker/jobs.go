package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Job types carried in Pub/Sub messages.
const (
	JobWeatherRefresh = "weather_refresh"
	JobHealthCheck    = "health_check"
)

// ErrUnknownJob is returned for a message with an unrecognised job type.
var ErrUnknownJob = errors.New("unknown job type")

// JobMessage is the payload of a worker Pub/Sub message.
type JobMessage struct {
	JobType string `json:"job_type"`
}

// ParseJobMessage decodes a message payload.
func ParseJobMessage(data []byte) (JobMessage, error) {
	var msg JobMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return msg, fmt.Errorf("parsing job message: %w", err)
	}
	return msg, nil
}

// Handle runs the job named by msg.
func (j *RefreshJob) Handle(ctx context.Context, msg JobMessage) error {
	switch msg.JobType {
	case JobWeatherRefresh:
		result, err := j.Run(ctx)
		if err != nil {
			return err
		}
		// Consider it successful if at least half succeeded.
		if result.Failed > result.Successful {
			return fmt.Errorf("too many refresh failures: %d/%d", result.Failed, result.TotalPoints)
		}
		return nil
	case JobHealthCheck:
		return j.HealthCheck(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownJob, msg.JobType)
	}
}
