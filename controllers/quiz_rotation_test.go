package controllers

import (
	"fmt"
	"testing"

	"bingo/models"
)

func questionBank(n int) []models.Question {
	bank := make([]models.Question, n)
	for i := range bank {
		bank[i] = models.Question{Question: fmt.Sprintf("q%d", i)}
	}
	return bank
}

func TestDailyBatchIsDeterministic(t *testing.T) {
	bank := questionBank(12)

	first := DailyBatch(bank, 3)
	second := DailyBatch(bank, 3)

	for i := range first {
		if first[i].Question != second[i].Question {
			t.Errorf("Batch differs at index %d for the same day: %s vs %s",
				i, first[i].Question, second[i].Question)
		}
	}
}

func TestDailyBatchRotatesByDay(t *testing.T) {
	bank := questionBank(12)

	day0 := DailyBatch(bank, 0)
	day1 := DailyBatch(bank, 1)

	if day0[0].Question != "q0" {
		t.Errorf("Expected day 0 to start at q0, got %s", day0[0].Question)
	}
	if day1[0].Question != "q5" {
		t.Errorf("Expected day 1 to start at q5, got %s", day1[0].Question)
	}
}

func TestDailyBatchWrapsAround(t *testing.T) {
	bank := questionBank(12)

	// Day 2 starts at index 10 and wraps to the front
	batch := DailyBatch(bank, 2)
	want := []string{"q10", "q11", "q0", "q1", "q2"}
	for i, q := range batch {
		if q.Question != want[i] {
			t.Errorf("Wraparound batch[%d] = %s, want %s", i, q.Question, want[i])
		}
	}
}

func TestDailyBatchSize(t *testing.T) {
	bank := questionBank(30)
	if got := len(DailyBatch(bank, 7)); got != QuizBatchSize {
		t.Errorf("Expected batch of %d, got %d", QuizBatchSize, got)
	}
}

func TestDailyBatchEmptyBank(t *testing.T) {
	if batch := DailyBatch(nil, 4); batch != nil {
		t.Errorf("Expected nil batch for empty bank, got %v", batch)
	}
}

func TestDailyBatchSmallBankRepeats(t *testing.T) {
	bank := questionBank(3)
	batch := DailyBatch(bank, 0)
	if len(batch) != QuizBatchSize {
		t.Fatalf("Expected batch of %d even for a small bank, got %d", QuizBatchSize, len(batch))
	}
	if batch[3].Question != "q0" {
		t.Errorf("Expected wraparound repeat q0 at index 3, got %s", batch[3].Question)
	}
}
