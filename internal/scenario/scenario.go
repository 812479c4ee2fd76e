// Package scenario replays scripted gameplay sessions through the telemetry
// client. Scenarios are YAML documents:
//
//	player_id: player-1
//	starting_playtime_seconds: 3600
//	steps:
//	  - type: CHECKPOINT
//	    x: 10.5
//	    y: 3
//	    meta: {checkpoint_id: cp-1}
//	    delay: 250ms
package scenario

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	overseer "github.com/SebastienMelki/overseer/sdk/go"
)

// ErrPlayerRequired is returned when a scenario has no player id.
var ErrPlayerRequired = errors.New("scenario: player_id is required")

// Scenario is one scripted session.
type Scenario struct {
	PlayerID                string `yaml:"player_id"`
	StartingPlaytimeSeconds int64  `yaml:"starting_playtime_seconds"`
	Steps                   []Step `yaml:"steps"`
}

// Step is one event in a scenario.
type Step struct {
	Type  string         `yaml:"type"`
	X     float64        `yaml:"x"`
	Y     float64        `yaml:"y"`
	Meta  map[string]any `yaml:"meta"`
	Delay time.Duration  `yaml:"delay"`

	eventType overseer.EventType
}

// EventType returns the validated event type. Only set after Parse.
func (s Step) EventType() overseer.EventType {
	return s.eventType
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: invalid YAML: %w", err)
	}

	if sc.PlayerID == "" {
		return nil, ErrPlayerRequired
	}

	for i := range sc.Steps {
		et, err := overseer.ParseEventType(sc.Steps[i].Type)
		if err != nil {
			return nil, fmt.Errorf("scenario: step %d: %w", i, err)
		}
		if sc.Steps[i].Delay < 0 {
			return nil, fmt.Errorf("scenario: step %d: delay must be non-negative", i)
		}
		sc.Steps[i].eventType = et
	}

	return &sc, nil
}

// Builtin returns a scenario that emits one event of every known type.
func Builtin(playerID string) *Scenario {
	sc := &Scenario{PlayerID: playerID}
	for i, et := range overseer.EventTypes() {
		sc.Steps = append(sc.Steps, Step{
			Type:      string(et),
			X:         float64(i) * 10.25,
			Y:         float64(i) * 4.5,
			Meta:      map[string]any{"source": "overseer-probe", "step": i},
			eventType: et,
		})
	}
	return sc
}
