package models

import "time"

// AchievementDef is a badge definition with its unlock rule
type AchievementDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Unlocked    func(u *User) bool
}

// AchievementDefs lists every badge the app can award
var AchievementDefs = []AchievementDef{
	{
		ID:          "first_mission",
		Name:        "First Steps",
		Description: "Complete your first mission",
		Icon:        "🌱",
		Unlocked: func(u *User) bool {
			return u.Statistics.TotalMissionsCompleted >= 1
		},
	},
	{
		ID:          "century_club",
		Name:        "Century Club",
		Description: "Earn 100 total points",
		Icon:        "💯",
		Unlocked: func(u *User) bool {
			return u.TotalPoints >= 100
		},
	},
	{
		ID:          "eco_champion",
		Name:        "Eco Champion",
		Description: "Earn 500 total points",
		Icon:        "🏆",
		Unlocked: func(u *User) bool {
			return u.TotalPoints >= 500
		},
	},
	{
		ID:          "streak_starter",
		Name:        "Streak Starter",
		Description: "Keep a 3-day completion streak",
		Icon:        "🔥",
		Unlocked: func(u *User) bool {
			return u.StreakData.CurrentStreak >= 3
		},
	},
}

// EvaluateAchievements returns the badges the user now qualifies for
// but has not yet earned. It does not mutate the user.
func EvaluateAchievements(u *User, now time.Time) []Achievement {
	earned := make(map[string]bool, len(u.Achievements))
	for _, a := range u.Achievements {
		earned[a.ID] = true
	}

	var unlocked []Achievement
	for _, def := range AchievementDefs {
		if earned[def.ID] || !def.Unlocked(u) {
			continue
		}
		unlocked = append(unlocked, Achievement{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Icon:        def.Icon,
			EarnedAt:    now,
		})
	}
	return unlocked
}
