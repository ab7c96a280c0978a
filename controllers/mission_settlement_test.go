package controllers

import (
	"strings"
	"testing"
	"time"

	"bingo/models"

	"go.mongodb.org/mongo-driver/bson"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func streakUser(lastCompletion time.Time, streak int) *models.User {
	last := lastCompletion
	return &models.User{
		Missions: []models.MissionProgress{{MissionID: 3}},
		StreakData: models.StreakData{
			CurrentStreak:      streak,
			LongestStreak:      streak,
			LastCompletionDate: &last,
		},
	}
}

var streakMission = models.Mission{ID: 3, Category: models.CategoryStreaks, Reward: 50}

func TestCompletionGuardRejectsShortStreak(t *testing.T) {
	u := streakUser(day(2025, time.March, 11), 2)

	msg := completionGuard(u, &streakMission, day(2025, time.March, 12))
	if msg == "" {
		t.Fatal("Expected rejection with a 2-day streak")
	}
	if !strings.Contains(msg, "current: 2") {
		t.Errorf("Expected the current streak in the message, got %q", msg)
	}
}

func TestCompletionGuardRejectsLapsedStreak(t *testing.T) {
	// The stored counter still says 3, but the last completion is a
	// week old so the streak has lapsed.
	u := streakUser(day(2025, time.March, 5), 3)

	msg := completionGuard(u, &streakMission, day(2025, time.March, 12))
	if msg == "" {
		t.Fatal("Expected rejection for a lapsed streak despite stored counter 3")
	}
	if !strings.Contains(msg, "current: 0") {
		t.Errorf("Expected the lapsed streak reported as 0, got %q", msg)
	}
}

func TestCompletionGuardAcceptsLiveStreak(t *testing.T) {
	u := streakUser(day(2025, time.March, 11), 3)

	if msg := completionGuard(u, &streakMission, day(2025, time.March, 12)); msg != "" {
		t.Errorf("Expected a live 3-day streak to pass, got %q", msg)
	}
}

func TestCompletionGuardRejectsCompletedMission(t *testing.T) {
	u := &models.User{
		Missions: []models.MissionProgress{{MissionID: 1, Completed: true}},
	}
	mission := models.Mission{ID: 1, Category: models.CategoryWasteDisposal, Reward: 25}

	msg := completionGuard(u, &mission, day(2025, time.March, 12))
	if msg != "Mission already completed" {
		t.Errorf("Expected completed-mission rejection, got %q", msg)
	}
}

func TestSettlementUpdateFirstMission(t *testing.T) {
	u := &models.User{
		TotalPoints: 0,
		Level:       1,
		Missions:    []models.MissionProgress{{MissionID: 1}},
	}
	mission := models.Mission{ID: 1, Category: models.CategoryWasteDisposal, Reward: 25}
	now := day(2025, time.March, 12)

	_, update := settlementUpdate(u, &mission, "https://cdn.example/proof.jpg", now)

	inc := update["$inc"].(bson.M)
	if inc["totalPoints"] != 25 {
		t.Errorf("Expected 25 points credited, got %v", inc["totalPoints"])
	}
	if inc["statistics.totalMissionsCompleted"] != 1 {
		t.Errorf("Expected mission counter increment, got %v", inc["statistics.totalMissionsCompleted"])
	}
	if inc["statistics.wasteDisposed"] != 1 {
		t.Errorf("Expected category counter increment, got %v", inc["statistics.wasteDisposed"])
	}

	set := update["$set"].(bson.M)
	if set["level"] != 1 {
		t.Errorf("Expected level 1 at 25 points, got %v", set["level"])
	}
	if set["missions.$.completed"] != true {
		t.Errorf("Expected progress marked completed")
	}
	if set["missions.$.proofUrl"] != "https://cdn.example/proof.jpg" {
		t.Errorf("Expected proof URL persisted, got %v", set["missions.$.proofUrl"])
	}

	streak := set["streakData"].(models.StreakData)
	if streak.CurrentStreak != 1 {
		t.Errorf("Expected streak 1 after the first completion, got %d", streak.CurrentStreak)
	}
}

func TestSettlementUpdateCrossesLevel(t *testing.T) {
	u := &models.User{
		TotalPoints: 80,
		Level:       1,
		Missions:    []models.MissionProgress{{MissionID: 1}},
	}
	mission := models.Mission{ID: 1, Category: models.CategoryWasteDisposal, Reward: 25}

	_, update := settlementUpdate(u, &mission, "proof", day(2025, time.March, 12))

	set := update["$set"].(bson.M)
	if set["level"] != 2 {
		t.Errorf("Expected level 2 at 105 points, got %v", set["level"])
	}
}

func TestSettlementFilterGuardsIncompleteRecord(t *testing.T) {
	u := &models.User{Missions: []models.MissionProgress{{MissionID: 1}}}
	mission := models.Mission{ID: 1, Category: models.CategoryWasteDisposal, Reward: 25}

	filter, _ := settlementUpdate(u, &mission, "proof", day(2025, time.March, 12))

	elem := filter["missions"].(bson.M)["$elemMatch"].(bson.M)
	if elem["missionId"] != 1 {
		t.Errorf("Expected filter on missionId 1, got %v", elem["missionId"])
	}
	if elem["completed"] != false {
		t.Errorf("Expected filter to require an incomplete record, got %v", elem["completed"])
	}
}
