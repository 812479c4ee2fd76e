// Package overseer provides a fire-and-forget Go client that reports gameplay
// telemetry to an Overseer ingestion server.
package overseer

import (
	"fmt"
	"math"
	"runtime"
	"strconv"
)

// SDKVersion is the current version of the client.
const SDKVersion = "0.1.0"

// Overseer endpoint paths.
const (
	PathSessionStart = "/session/start"
	PathSessionEnd   = "/session/end"
	PathEvent        = "/event"
	PathIngest       = "/ingest"
	PathUserRegister = "/user/register"
	PathSaveUpload   = "/save/upload"
)

// EventType is the kind of a gameplay event.
type EventType string

// Known event types.
const (
	EventStealthBroken EventType = "STEALTH_BROKEN"
	EventPlayerDeath   EventType = "PLAYER_DEATH"
	EventItemUsed      EventType = "ITEM_USED"
	EventLevelComplete EventType = "LEVEL_COMPLETE"
	EventEnemyAlert    EventType = "ENEMY_ALERT"
	EventCheckpoint    EventType = "CHECKPOINT"
	EventDamageTaken   EventType = "DAMAGE_TAKEN"
)

var eventTypes = []EventType{
	EventStealthBroken,
	EventPlayerDeath,
	EventItemUsed,
	EventLevelComplete,
	EventEnemyAlert,
	EventCheckpoint,
	EventDamageTaken,
}

// EventTypes returns every known event type.
func EventTypes() []EventType {
	out := make([]EventType, len(eventTypes))
	copy(out, eventTypes)
	return out
}

// ParseEventType returns the EventType named by s.
func ParseEventType(s string) (EventType, error) {
	for _, et := range eventTypes {
		if string(et) == s {
			return et, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEventType, s)
}

// Coord is a world coordinate. It encodes as a JSON number with exactly two
// decimal places.
type Coord float64

// MarshalJSON implements json.Marshaler.
func (c Coord) MarshalJSON() ([]byte, error) {
	f := float64(c)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, ErrInvalidCoordinate
	}
	return strconv.AppendFloat(nil, f, 'f', 2, 64), nil
}

// SaveData is a player save uploaded to Overseer.
type SaveData struct {
	// LevelData is free-form level progress.
	LevelData map[string]any `json:"level_data"`

	// InventoryData is free-form inventory contents.
	InventoryData map[string]any `json:"inventory_data"`

	// TotalPlaytimeSeconds is the player's lifetime playtime, if known.
	TotalPlaytimeSeconds int64 `json:"totalPlaytimeSeconds,omitempty"`
}

// sessionStartPayload is the body of PathSessionStart.
type sessionStartPayload struct {
	SessionID             string `json:"session_id"`
	UserID                string `json:"user_id"`
	OSInfo                string `json:"os_info"`
	StartingTotalPlaytime *int64 `json:"starting_total_playtime,omitempty"`
}

// sessionEndPayload is the body of PathSessionEnd.
type sessionEndPayload struct {
	SessionID            string `json:"session_id"`
	PlaytimeSeconds      int64  `json:"playtime_seconds"`
	TotalPlaytimeSeconds *int64 `json:"total_playtime_seconds,omitempty"`
}

// eventPayload is the body of the event path.
type eventPayload struct {
	SessionID string         `json:"session_id"`
	EventType EventType      `json:"event_type"`
	X         Coord          `json:"x"`
	Y         Coord          `json:"y"`
	Meta      map[string]any `json:"meta"`
}

// registerPayload is the body of PathUserRegister.
type registerPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
}

// savePayload is the body of PathSaveUpload.
type savePayload struct {
	UserID   string   `json:"user_id"`
	SaveData SaveData `json:"save_data"`
}

// osInfo describes the host platform for session start.
func osInfo() string {
	return fmt.Sprintf("%s/%s (%s)", runtime.GOOS, runtime.GOARCH, runtime.Version())
}
