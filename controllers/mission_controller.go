package controllers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"bingo/db"
	"bingo/models"
	"bingo/services"
	"bingo/websocket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StreakProofSentinel marks a completion that has no photo proof
// because the mission is gated on the streak instead
const StreakProofSentinel = "streak"

const maxProofSize = 5 << 20 // 5MB

// ListMissions returns the active catalog, served through the Redis
// cache with a 5-minute expiry
func ListMissions(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if missions := services.CachedMissions(ctx); missions != nil {
		c.JSON(http.StatusOK, gin.H{"missions": missions, "cached": true})
		return
	}

	cursor, err := db.GetCollection("missions").Find(ctx, bson.M{"isActive": true},
		options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch missions"})
		return
	}
	defer cursor.Close(ctx)

	var missions []models.Mission
	if err := cursor.All(ctx, &missions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode missions"})
		return
	}

	services.CacheMissions(ctx, missions)
	c.JSON(http.StatusOK, gin.H{"missions": missions, "cached": false})
}

// GetMissionProgress returns the caller's per-mission progress records
func GetMissionProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"missions": user.Missions})
}

// CompleteMission verifies a proof and settles the mission in one
// request. Verification runs server-side: the AI, duplicate and face
// checks happen here, not in the client, so settlement cannot be
// reached with an unverified proof.
func CompleteMission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	missionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mission id"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	users := db.GetCollection("users")

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var mission models.Mission
	err = db.GetCollection("missions").FindOne(ctx, bson.M{"id": missionID, "isActive": true}).Decode(&mission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mission not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	now := time.Now()
	if msg := completionGuard(&user, &mission, now); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	proofURL := StreakProofSentinel
	statuses := services.StageStatuses{AI: services.StageSkip, Duplicate: services.StageSkip, Face: services.StageSkip}

	if mission.Category != models.CategoryStreaks {
		result := runProofPipeline(c, ctx, &user, missionID)
		if result == nil {
			return
		}
		if !result.Passed {
			status := http.StatusBadRequest
			if result.Reason == services.ReasonUploadFailed || result.Reason == services.ReasonVerifierError {
				status = http.StatusBadGateway
			}
			c.JSON(status, gin.H{
				"error":    result.Message,
				"reason":   result.Reason,
				"statuses": result.Statuses,
				"details":  result.Duplicate,
			})
			return
		}
		proofURL = result.ProofURL
		statuses = result.Statuses
	}

	// Settlement happens inside one conditional update: the filter
	// only matches while the progress record is still incomplete, so
	// concurrent calls cannot double-award points.
	filter, update := settlementUpdate(&user, &mission, proofURL, now)

	ensureProgressRecord(ctx, users, userID, missionID)

	var updated models.User
	err = users.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mission already completed"})
		} else {
			log.Printf("Error settling mission %d for user %s: %v", missionID, userID.Hex(), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete mission"})
		}
		return
	}

	newAchievements := awardAchievements(ctx, users, &updated, now)

	websocket.BroadcastGamificationEvent(models.GamificationEvent{
		Type:      "points_updated",
		UserID:    userID.Hex(),
		Points:    mission.Reward,
		NewTotal:  updated.TotalPoints,
		Level:     updated.Level,
		MissionID: missionID,
		Timestamp: now,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"pointsEarned":    mission.Reward,
		"totalPoints":     updated.TotalPoints,
		"level":           updated.Level,
		"newAchievements": newAchievements,
		"streak":          updated.StreakData,
		"statistics":      updated.Statistics,
		"statuses":        statuses,
	})
}

// completionGuard checks the settle preconditions that depend only on
// the loaded user and mission. Returns a client-facing message when
// the completion must be rejected, or "" when it may proceed. The
// streak gate uses the effective streak so a lapsed streak whose
// stored counter still holds the old value cannot unlock the mission.
func completionGuard(user *models.User, mission *models.Mission, now time.Time) string {
	if progress := user.Progress(mission.ID); progress != nil && progress.Completed {
		return "Mission already completed"
	}
	if mission.Category == models.CategoryStreaks {
		if streak := user.EffectiveStreak(now); streak < models.MinStreakForStreakMission {
			return fmt.Sprintf("You need a %d-day streak to complete this mission (current: %d)",
				models.MinStreakForStreakMission, streak)
		}
	}
	return ""
}

// settlementUpdate advances the user's streak and builds the
// conditional document update for a successful completion. The filter
// only matches while the progress record is still incomplete.
func settlementUpdate(user *models.User, mission *models.Mission, proofURL string, now time.Time) (bson.M, bson.M) {
	user.UpdateStreak(now)
	newLevel := models.LevelForPoints(user.TotalPoints + mission.Reward)

	set := bson.M{
		"missions.$.completed":    true,
		"missions.$.proofUrl":     proofURL,
		"missions.$.completedAt":  now,
		"missions.$.pointsEarned": mission.Reward,
		"level":                   newLevel,
		"streakData":              user.StreakData,
		"updatedAt":               now,
	}
	inc := bson.M{
		"totalPoints":                       mission.Reward,
		"statistics.totalMissionsCompleted": 1,
	}
	if field := models.StatisticsField(mission.Category); field != "" {
		inc[field] = 1
	}

	filter := bson.M{
		"_id":      user.ID,
		"missions": bson.M{"$elemMatch": bson.M{"missionId": mission.ID, "completed": false}},
	}
	return filter, bson.M{"$set": set, "$inc": inc}
}

// runProofPipeline reads the uploaded proof and runs the verification
// chain. Returns nil after writing an error response.
func runProofPipeline(c *gin.Context, ctx context.Context, user *models.User, missionID int) *services.PipelineResult {
	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Proof image is required"})
		return nil
	}
	if fileHeader.Size > maxProofSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size too large. Maximum 5MB allowed."})
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read proof image"})
		return nil
	}
	defer file.Close()

	proof, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read proof image"})
		return nil
	}

	pipeline := services.NewProofPipeline(services.GetStorageClient(), services.GetVerifierClient())
	return pipeline.Run(ctx, user.ID.Hex(), missionID, user.ProfileImage, fileHeader.Filename, proof)
}

// ensureProgressRecord pushes a default progress record when the user
// predates the mission. The $ne guard keeps this from duplicating an
// existing record.
func ensureProgressRecord(ctx context.Context, users *mongo.Collection, userID primitive.ObjectID, missionID int) {
	filter := bson.M{"_id": userID, "missions.missionId": bson.M{"$ne": missionID}}
	update := bson.M{"$push": bson.M{"missions": models.MissionProgress{MissionID: missionID}}}
	if _, err := users.UpdateOne(ctx, filter, update); err != nil {
		log.Printf("Error ensuring progress record: %v", err)
	}
}

// awardAchievements appends newly unlocked badges and broadcasts each
// unlock. The $ne filter makes every append idempotent.
func awardAchievements(ctx context.Context, users *mongo.Collection, user *models.User, now time.Time) []models.Achievement {
	unlocked := models.EvaluateAchievements(user, now)
	var awarded []models.Achievement

	for _, a := range unlocked {
		filter := bson.M{"_id": user.ID, "achievements.id": bson.M{"$ne": a.ID}}
		result, err := users.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"achievements": a}})
		if err != nil {
			log.Printf("Error awarding achievement %s: %v", a.ID, err)
			continue
		}
		if result.ModifiedCount == 0 {
			continue
		}
		awarded = append(awarded, a)

		websocket.BroadcastGamificationEvent(models.GamificationEvent{
			Type:            "achievement_unlocked",
			UserID:          user.ID.Hex(),
			AchievementID:   a.ID,
			AchievementName: a.Name,
			Timestamp:       now,
		})
	}

	return awarded
}
