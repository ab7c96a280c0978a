package db

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexModelsUniqueEmailGuard(t *testing.T) {
	models := indexModels()

	users, ok := models["users"]
	if !ok {
		t.Fatal("Expected an index on the users collection")
	}
	if users.Options == nil || users.Options.Unique == nil || !*users.Options.Unique {
		t.Error("Expected the users email index to be unique")
	}
	keys := users.Keys.(bson.D)
	if len(keys) != 1 || keys[0].Key != "email" {
		t.Errorf("Expected the users index keyed on email, got %v", keys)
	}
}

func TestIndexModelsUniqueQuizAttempt(t *testing.T) {
	attempts, ok := indexModels()["quiz_attempts"]
	if !ok {
		t.Fatal("Expected an index on the quiz_attempts collection")
	}
	if attempts.Options == nil || attempts.Options.Unique == nil || !*attempts.Options.Unique {
		t.Error("Expected the quiz attempt index to be unique")
	}
	keys := attempts.Keys.(bson.D)
	if len(keys) != 2 || keys[0].Key != "userId" || keys[1].Key != "date" {
		t.Errorf("Expected the quiz attempt index on (userId, date), got %v", keys)
	}
}

func TestIndexModelsDustbinGeo(t *testing.T) {
	dustbins, ok := indexModels()["dustbins"]
	if !ok {
		t.Fatal("Expected an index on the dustbins collection")
	}
	keys := dustbins.Keys.(bson.D)
	if len(keys) != 1 || keys[0].Key != "location" || keys[0].Value != "2dsphere" {
		t.Errorf("Expected a 2dsphere index on location, got %v", keys)
	}
}

func TestExtractDBName(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"mongodb://localhost:27017/bingo", "bingo"},
		{"mongodb://localhost:27017/custom", "custom"},
		{"mongodb://localhost:27017", "bingo"},
		{"mongodb://localhost:27017/", "bingo"},
	}
	for _, tc := range cases {
		if got := extractDBName(tc.uri); got != tc.want {
			t.Errorf("extractDBName(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}
