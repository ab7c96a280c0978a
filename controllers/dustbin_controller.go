package controllers

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"bingo/db"
	"bingo/models"
	"bingo/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListDustbins returns all active dustbins for the map view
func ListDustbins(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.GetCollection("dustbins").Find(ctx,
		bson.M{"status": models.DustbinStatusActive},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dustbins"})
		return
	}
	defer cursor.Close(ctx)

	var dustbins []models.Dustbin
	if err := cursor.All(ctx, &dustbins); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode dustbins"})
		return
	}

	c.JSON(http.StatusOK, dustbins)
}

// NearbyDustbins returns active dustbins within a radius (meters,
// default 5km) of the given point
func NearbyDustbins(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude are required"})
		return
	}

	radius := 5000
	if radiusStr := c.Query("radius"); radiusStr != "" {
		parsed, err := strconv.Atoi(radiusStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates or radius"})
			return
		}
		radius = parsed
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.DustbinStatusActive,
		"location": bson.M{
			"$near": bson.M{
				"$geometry": bson.M{
					"type":        "Point",
					"coordinates": []float64{lng, lat},
				},
				"$maxDistance": radius,
			},
		},
	}

	cursor, err := db.GetCollection("dustbins").Find(ctx, filter)
	if err != nil {
		log.Printf("Error fetching nearby dustbins: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dustbins"})
		return
	}
	defer cursor.Close(ctx)

	var dustbins []models.Dustbin
	if err := cursor.All(ctx, &dustbins); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode dustbins"})
		return
	}

	c.JSON(http.StatusOK, dustbins)
}

// AddDustbin registers a new bin location with a photo. The image is
// stored in Cloudinary and only the URL persisted.
func AddDustbin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	lat, errLat := strconv.ParseFloat(c.PostForm("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.PostForm("lng"), 64)
	address := c.PostForm("address")
	if errLat != nil || errLng != nil || address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude, longitude and address are required"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
		return
	}
	if fileHeader.Size > maxProofSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size too large. Maximum 5MB allowed."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	imageURL, err := services.GetStorageClient().Upload(ctx, fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		log.Printf("Error uploading dustbin image: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to upload image to cloud storage"})
		return
	}

	addedByName := c.PostForm("addedByName")
	if addedByName == "" {
		addedByName = "Anonymous"
	}

	dustbin := models.Dustbin{
		Location: models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{lng, lat},
		},
		Address:     address,
		Description: c.PostForm("description"),
		Image:       imageURL,
		AddedBy:     userID.Hex(),
		AddedByName: addedByName,
		Status:      models.DustbinStatusActive,
		CreatedAt:   time.Now(),
	}

	result, err := db.GetCollection("dustbins").InsertOne(ctx, dustbin)
	if err != nil {
		log.Printf("Error adding dustbin: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add dustbin"})
		return
	}

	dustbin.ID = result.InsertedID.(primitive.ObjectID)
	c.JSON(http.StatusCreated, dustbin)
}

// DeleteDustbin removes a bin; only the reporter may delete it
func DeleteDustbin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dustbinID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dustbin ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dustbins := db.GetCollection("dustbins")

	var dustbin models.Dustbin
	if err := dustbins.FindOne(ctx, bson.M{"_id": dustbinID}).Decode(&dustbin); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dustbin not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dustbin"})
		}
		return
	}

	if dustbin.AddedBy != userID.Hex() {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete dustbins you added"})
		return
	}

	if _, err := dustbins.DeleteOne(ctx, bson.M{"_id": dustbinID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dustbin"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Dustbin deleted successfully"})
}

// LikeDustbin increments the like counter
func LikeDustbin(c *gin.Context) {
	updateDustbinCounter(c, "likes", false)
}

// ReportDustbin increments the report counter and hides the bin once
// it crosses the report threshold
func ReportDustbin(c *gin.Context) {
	updateDustbinCounter(c, "reports", true)
}

func updateDustbinCounter(c *gin.Context, field string, hideOnThreshold bool) {
	dustbinID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dustbin ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dustbins := db.GetCollection("dustbins")

	var dustbin models.Dustbin
	err = dustbins.FindOneAndUpdate(ctx,
		bson.M{"_id": dustbinID},
		bson.M{"$inc": bson.M{field: 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&dustbin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dustbin not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dustbin"})
		}
		return
	}

	if hideOnThreshold && dustbin.Reports >= models.ReportsBeforeHidden && dustbin.Status == models.DustbinStatusActive {
		dustbin.Status = models.DustbinStatusReported
		if _, err := dustbins.UpdateOne(ctx, bson.M{"_id": dustbinID},
			bson.M{"$set": bson.M{"status": models.DustbinStatusReported}}); err != nil {
			log.Printf("Error hiding reported dustbin: %v", err)
		}
	}

	c.JSON(http.StatusOK, dustbin)
}
