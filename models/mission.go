package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mission categories used for statistics and settlement rules
const (
	CategoryWasteDisposal = "Waste Disposal"
	CategorySuggestBin    = "Suggest Bin"
	CategoryStreaks       = "Streaks"
	CategorySorting       = "Sorting"
)

// MinStreakForStreakMission is the streak required before the streak
// mission can be settled
const MinStreakForStreakMission = 3

// MissionRequirements gates a mission behind prior progress
type MissionRequirements struct {
	MinStreak            int   `bson:"minStreak,omitempty" json:"minStreak,omitempty"`
	PrerequisiteMissions []int `bson:"prerequisiteMissions,omitempty" json:"prerequisiteMissions,omitempty"`
}

// Mission is a catalog-defined eco-action task. The catalog is seeded
// once and read-only at runtime.
type Mission struct {
	ObjectID     primitive.ObjectID   `bson:"_id,omitempty" json:"-"`
	ID           int                  `bson:"id" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description" json:"description"`
	Tags         []string             `bson:"tags" json:"tags"`
	Reward       int                  `bson:"reward" json:"reward"`
	Category     string               `bson:"category" json:"category"`
	Color        string               `bson:"color" json:"color"`
	IsActive     bool                 `bson:"isActive" json:"isActive"`
	Requirements *MissionRequirements `bson:"requirements,omitempty" json:"requirements,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}

// StatisticsField maps a mission category to the statistics counter it
// increments on settlement. The streak mission has no counter of its
// own.
func StatisticsField(category string) string {
	switch category {
	case CategoryWasteDisposal:
		return "statistics.wasteDisposed"
	case CategorySuggestBin:
		return "statistics.binsRecommended"
	case CategorySorting:
		return "statistics.wasteSorted"
	default:
		return ""
	}
}

// DefaultMissions is the seed catalog
var DefaultMissions = []Mission{
	{
		ID:          1,
		Title:       "Dispose Waste",
		Description: "Dispose of at least 3 pieces of litter in a public bin and upload a photo as proof of your eco-action.",
		Tags:        []string{"Waste", "Action", "Photo"},
		Reward:      25,
		Category:    CategoryWasteDisposal,
		Color:       "emerald",
		IsActive:    true,
	},
	{
		ID:          2,
		Title:       "Suggest Bin",
		Description: "Suggest a new location for a public waste bin in your area to help keep the community clean.",
		Tags:        []string{"Community", "Suggestion"},
		Reward:      15,
		Category:    CategorySuggestBin,
		Color:       "blue",
		IsActive:    true,
	},
	{
		ID:          3,
		Title:       "3-Day Streak",
		Description: "Dispose waste for 3 consecutive days to earn a streak badge and build a sustainable habit.",
		Tags:        []string{"Streak", "Habit", "Badge"},
		Reward:      50,
		Category:    CategoryStreaks,
		Color:       "amber",
		IsActive:    true,
		Requirements: &MissionRequirements{
			MinStreak: MinStreakForStreakMission,
		},
	},
	{
		ID:          4,
		Title:       "Sort Waste",
		Description: "Sort your household waste into recyclables and non-recyclables and upload a photo of your sorting.",
		Tags:        []string{"Sorting", "Recycling", "Photo"},
		Reward:      20,
		Category:    CategorySorting,
		Color:       "purple",
		IsActive:    true,
	},
}
