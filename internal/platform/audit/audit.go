// Package audit carries the operator escalation channel. A post-commit
// verification failure means the storage layer broke the atomicity guarantee;
// that is never retried automatically, it is published for a human.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Event is one operator-facing audit record.
type Event struct {
	Kind       string    `json:"kind"`
	TenantID   string    `json:"tenantID"`
	ExerciseID string    `json:"exerciseID,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	Detail     string    `json:"detail"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Event kinds published by the posting engine.
const (
	KindPostCommitImbalance = "POST_COMMIT_IMBALANCE"
	KindExerciseClosed      = "EXERCISE_CLOSED"
)

// Notifier publishes audit events to the operator channel.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
	Close() error
}

// LogNotifier writes audit events to the structured log. It is the fallback
// when no broker is configured, and always runs alongside the broker notifier
// so an event survives a publish failure.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Notify(_ context.Context, event Event) error {
	payload, _ := json.Marshal(event)
	n.Logger.Error("LEDGER AUDIT EVENT", slog.String("kind", event.Kind), slog.String("event", string(payload)))
	return nil
}

func (n *LogNotifier) Close() error { return nil }
