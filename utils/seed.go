package utils

import (
	"context"
	"log"
	"time"

	"bingo/db"
	"bingo/models"

	"go.mongodb.org/mongo-driver/bson"
)

// SeedMissions inserts the default mission catalog if the collection
// is empty
func SeedMissions() {
	collection := db.GetCollection("missions")
	count, _ := collection.CountDocuments(context.Background(), bson.M{})
	if count > 0 {
		return
	}

	var documents []interface{}
	for _, mission := range models.DefaultMissions {
		mission.CreatedAt = time.Now()
		documents = append(documents, mission)
	}

	if _, err := collection.InsertMany(context.Background(), documents); err != nil {
		log.Printf("Failed to seed missions: %v", err)
		return
	}
	log.Printf("Seeded %d missions", len(documents))
}

var defaultQuestions = []models.Question{
	{
		Question:      "Which bin should plastic bottles go into?",
		Options:       []string{"Organic waste", "Recyclables", "Hazardous waste", "Landfill"},
		CorrectAnswer: 1,
	},
	{
		Question:      "How long does a plastic bag take to decompose?",
		Options:       []string{"1 year", "10 years", "20-1000 years", "It never decomposes"},
		CorrectAnswer: 2,
	},
	{
		Question:      "What is composting?",
		Options:       []string{"Burning waste", "Recycling metal", "Natural decomposition of organic matter", "Burying plastic"},
		CorrectAnswer: 2,
	},
	{
		Question:      "Which of these is biodegradable?",
		Options:       []string{"Glass bottle", "Banana peel", "Aluminium can", "Styrofoam cup"},
		CorrectAnswer: 1,
	},
	{
		Question:      "What does the three-arrow triangle symbol mean?",
		Options:       []string{"Toxic material", "Recyclable", "Flammable", "Compostable"},
		CorrectAnswer: 1,
	},
	{
		Question:      "Which waste type should never go in a regular bin?",
		Options:       []string{"Paper", "Food scraps", "Batteries", "Cardboard"},
		CorrectAnswer: 2,
	},
	{
		Question:      "What is e-waste?",
		Options:       []string{"Expired food", "Discarded electronics", "Plastic packaging", "Garden waste"},
		CorrectAnswer: 1,
	},
	{
		Question:      "Which material can be recycled indefinitely without quality loss?",
		Options:       []string{"Paper", "Plastic", "Glass", "Fabric"},
		CorrectAnswer: 2,
	},
	{
		Question:      "What should you do with used cooking oil?",
		Options:       []string{"Pour it down the drain", "Collect it for designated disposal", "Mix it with water", "Bury it in soil"},
		CorrectAnswer: 1,
	},
	{
		Question:      "Which of these reduces waste the most?",
		Options:       []string{"Recycling", "Reusing", "Refusing unnecessary items", "Composting"},
		CorrectAnswer: 2,
	},
}

// SeedQuestionBank inserts the starter quiz questions if the bank is
// empty
func SeedQuestionBank() {
	collection := db.GetCollection("questions")
	count, _ := collection.CountDocuments(context.Background(), bson.M{})
	if count > 0 {
		return
	}

	var documents []interface{}
	for _, q := range defaultQuestions {
		q.CreatedAt = time.Now()
		documents = append(documents, q)
	}

	if _, err := collection.InsertMany(context.Background(), documents); err != nil {
		log.Printf("Failed to seed question bank: %v", err)
		return
	}
	log.Printf("Seeded %d quiz questions", len(documents))
}
