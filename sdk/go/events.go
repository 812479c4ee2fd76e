package overseer

import "time"

// StealthBroken reports that an enemy spotted the player.
func (c *Client) StealthBroken(x, y float64, enemyID string) {
	c.SendEvent(EventStealthBroken, x, y, map[string]any{
		"enemy_id": enemyID,
	})
}

// PlayerDeath reports that the player died.
func (c *Client) PlayerDeath(x, y float64, cause string) {
	c.SendEvent(EventPlayerDeath, x, y, map[string]any{
		"cause": cause,
	})
}

// ItemUsed reports that the player used an item.
func (c *Client) ItemUsed(x, y float64, item string) {
	c.SendEvent(EventItemUsed, x, y, map[string]any{
		"item": item,
	})
}

// LevelComplete reports that the player finished a level after elapsed.
func (c *Client) LevelComplete(x, y float64, level string, elapsed time.Duration) {
	c.SendEvent(EventLevelComplete, x, y, map[string]any{
		"level":        level,
		"time_seconds": elapsed.Seconds(),
	})
}

// EnemyAlert reports an enemy entering an alert state.
func (c *Client) EnemyAlert(x, y float64, enemyID string, alertLevel int) {
	c.SendEvent(EventEnemyAlert, x, y, map[string]any{
		"enemy_id":    enemyID,
		"alert_level": alertLevel,
	})
}

// Checkpoint reports that the player reached a checkpoint.
func (c *Client) Checkpoint(x, y float64, checkpointID string) {
	c.SendEvent(EventCheckpoint, x, y, map[string]any{
		"checkpoint_id": checkpointID,
	})
}

// DamageTaken reports damage dealt to the player by source.
func (c *Client) DamageTaken(x, y float64, amount float64, source string) {
	c.SendEvent(EventDamageTaken, x, y, map[string]any{
		"amount": amount,
		"source": source,
	})
}

// RegisterUser queues a user registration for the active session's player.
// An empty username lets Overseer pick its default.
func (c *Client) RegisterUser(username string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.tracker.Current()
	if c.worker == nil || !ok {
		c.notInitialized(PathUserRegister)
		return
	}

	c.enqueueLocked(job{
		path:    PathUserRegister,
		payload: registerPayload{UserID: s.PlayerID, Username: username},
	})
}

// UploadSave queues a save upload for the active session's player.
func (c *Client) UploadSave(save SaveData) {
	if save.LevelData == nil {
		save.LevelData = map[string]any{}
	}
	if save.InventoryData == nil {
		save.InventoryData = map[string]any{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.tracker.Current()
	if c.worker == nil || !ok {
		c.notInitialized(PathSaveUpload)
		return
	}

	c.enqueueLocked(job{
		path:    PathSaveUpload,
		payload: savePayload{UserID: s.PlayerID, SaveData: save},
	})
}
