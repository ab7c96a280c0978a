package models

import "time"

// GamificationEvent is broadcast to websocket subscribers when points
// move or an achievement unlocks
type GamificationEvent struct {
	Type            string    `json:"type"` // "points_updated", "achievement_unlocked"
	UserID          string    `json:"userId"`
	AchievementID   string    `json:"achievementId,omitempty"`
	AchievementName string    `json:"achievementName,omitempty"`
	Points          int       `json:"points,omitempty"`
	NewTotal        int       `json:"newTotal,omitempty"`
	Level           int       `json:"level,omitempty"`
	MissionID       int       `json:"missionId,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
