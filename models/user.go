package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointsPerLevel is the number of points needed for each level
const PointsPerLevel = 100

// MissionProgress tracks a user's progress on a single catalog mission.
// A mission can be completed at most once; completed records are never
// reset.
type MissionProgress struct {
	MissionID    int        `bson:"missionId" json:"missionId"`
	Completed    bool       `bson:"completed" json:"completed"`
	ProofURL     string     `bson:"proofUrl" json:"proofUrl"`
	CompletedAt  *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	PointsEarned int        `bson:"pointsEarned" json:"pointsEarned"`
}

// Achievement is a one-time badge earned by crossing a threshold
type Achievement struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Icon        string    `bson:"icon" json:"icon"`
	EarnedAt    time.Time `bson:"earnedAt" json:"earnedAt"`
}

// StreakData tracks consecutive-day mission completions
type StreakData struct {
	CurrentStreak      int        `bson:"currentStreak" json:"currentStreak"`
	LongestStreak      int        `bson:"longestStreak" json:"longestStreak"`
	LastCompletionDate *time.Time `bson:"lastCompletionDate,omitempty" json:"lastCompletionDate,omitempty"`
}

// Statistics holds per-category completion counters
type Statistics struct {
	TotalMissionsCompleted int `bson:"totalMissionsCompleted" json:"totalMissionsCompleted"`
	WasteDisposed          int `bson:"wasteDisposed" json:"wasteDisposed"`
	BinsRecommended        int `bson:"binsRecommended" json:"binsRecommended"`
	WasteSorted            int `bson:"wasteSorted" json:"wasteSorted"`
}

// User defines a user entity
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name" json:"name"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	ProfileImage string             `bson:"profileImage" json:"profileImage"`
	TotalPoints  int                `bson:"totalPoints" json:"totalPoints"`
	Level        int                `bson:"level" json:"level"`
	Missions     []MissionProgress  `bson:"missions" json:"missions"`
	Achievements []Achievement      `bson:"achievements" json:"achievements"`
	StreakData   StreakData         `bson:"streakData" json:"streakData"`
	Statistics   Statistics         `bson:"statistics" json:"statistics"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LevelForPoints derives the level for a point total
func LevelForPoints(points int) int {
	return points/PointsPerLevel + 1
}

// CalculateLevel recomputes the user's level from their point total
func (u *User) CalculateLevel() int {
	u.Level = LevelForPoints(u.TotalPoints)
	return u.Level
}

// AddPoints credits points and updates the level
func (u *User) AddPoints(points int) int {
	u.TotalPoints += points
	u.CalculateLevel()
	return u.TotalPoints
}

// Progress returns the progress record for a mission, or nil
func (u *User) Progress(missionID int) *MissionProgress {
	for i := range u.Missions {
		if u.Missions[i].MissionID == missionID {
			return &u.Missions[i]
		}
	}
	return nil
}

// UpdateStreak advances the daily streak for a completion happening at
// "now". Completions on the same calendar day leave the streak
// unchanged, a completion the day after the last one increments it,
// and any longer gap resets it to 1. Returns the current streak.
func (u *User) UpdateStreak(now time.Time) int {
	today := truncateToDay(now)

	var last *time.Time
	if u.StreakData.LastCompletionDate != nil {
		d := truncateToDay(*u.StreakData.LastCompletionDate)
		last = &d
	}

	// Already completed today, nothing to do
	if last != nil && last.Equal(today) {
		return u.StreakData.CurrentStreak
	}

	yesterday := today.AddDate(0, 0, -1)
	if last != nil && last.Equal(yesterday) {
		u.StreakData.CurrentStreak++
	} else {
		u.StreakData.CurrentStreak = 1
	}

	if u.StreakData.CurrentStreak > u.StreakData.LongestStreak {
		u.StreakData.LongestStreak = u.StreakData.CurrentStreak
	}

	u.StreakData.LastCompletionDate = &today
	return u.StreakData.CurrentStreak
}

// EffectiveStreak returns the streak as of "now" without mutating the
// stored data. The stored counter keeps its last value across idle
// days, so a streak whose last completion is older than yesterday has
// already lapsed and counts as 0.
func (u *User) EffectiveStreak(now time.Time) int {
	if u.StreakData.LastCompletionDate == nil {
		return 0
	}
	today := truncateToDay(now)
	last := truncateToDay(*u.StreakData.LastCompletionDate)
	if last.Equal(today) || last.Equal(today.AddDate(0, 0, -1)) {
		return u.StreakData.CurrentStreak
	}
	return 0
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
