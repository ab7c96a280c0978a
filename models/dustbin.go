package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dustbin statuses
const (
	DustbinStatusActive   = "active"
	DustbinStatusReported = "reported"
)

// ReportsBeforeHidden is the report count at which a dustbin is hidden
const ReportsBeforeHidden = 5

// GeoPoint is a GeoJSON point, coordinates ordered [lng, lat]
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Dustbin is a community-reported public bin location
type Dustbin struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Location    GeoPoint           `bson:"location" json:"location"`
	Address     string             `bson:"address" json:"address"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	AddedBy     string             `bson:"addedBy" json:"addedBy"`
	AddedByName string             `bson:"addedByName" json:"addedByName"`
	Likes       int                `bson:"likes" json:"likes"`
	Reports     int                `bson:"reports" json:"reports"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
