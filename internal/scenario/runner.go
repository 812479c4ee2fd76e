package scenario

import (
	"context"
	"log/slog"
	"time"

	overseer "github.com/SebastienMelki/overseer/sdk/go"
)

// Client is the subset of the telemetry client a scenario drives.
type Client interface {
	Initialize(playerID string, opts ...overseer.SessionOption)
	IsActive() bool
	SendEvent(eventType overseer.EventType, x, y float64, meta map[string]any)
	Shutdown()
}

// Run replays sc through client and returns the number of steps sent, plus
// ctx.Err() if replay was interrupted.
//
// If client has no active session, Run starts one for sc.PlayerID and always
// shuts it down before returning, even when ctx is canceled midway. A session
// that was already active belongs to the caller: Run replays into it and
// leaves it running.
//
// Steps built in code rather than by Parse have their Type resolved here;
// steps naming an unknown event type are logged and skipped.
func Run(ctx context.Context, client Client, sc *Scenario, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scenario", "player_id", sc.PlayerID)

	var opts []overseer.SessionOption
	if sc.StartingPlaytimeSeconds > 0 {
		opts = append(opts, overseer.WithStartingPlaytime(time.Duration(sc.StartingPlaytimeSeconds)*time.Second))
	}

	if client.IsActive() {
		logger.Info("replaying into existing session")
	} else {
		client.Initialize(sc.PlayerID, opts...)
		defer client.Shutdown()
	}

	sent := 0
	for i, step := range sc.Steps {
		if step.Delay > 0 {
			timer := time.NewTimer(step.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				logger.Info("scenario interrupted", "sent", sent, "remaining", len(sc.Steps)-i)
				return sent, ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			logger.Info("scenario interrupted", "sent", sent, "remaining", len(sc.Steps)-i)
			return sent, err
		}

		eventType := step.EventType()
		if eventType == "" {
			et, err := overseer.ParseEventType(step.Type)
			if err != nil {
				logger.Warn("skipping scenario step", "step", i, "error", err)
				continue
			}
			eventType = et
		}

		client.SendEvent(eventType, step.X, step.Y, step.Meta)
		sent++
		logger.Debug("scenario step sent", "step", i, "event_type", step.Type)
	}

	logger.Info("scenario complete", "sent", sent)
	return sent, nil
}
