package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeVerifier struct {
	ai   AIAnalysis
	dup  DuplicateResult
	face map[string]interface{}
}

func newTestServers(t *testing.T, fv *fakeVerifier) (*CloudinaryClient, *VerifierClient, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/image/upload", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"secure_url": "https://cdn.example/proof.jpg"})
	})
	mux.HandleFunc("/analyze_ai_only", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fv.ai)
	})
	mux.HandleFunc("/check_duplicate", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fv.dup)
	})
	mux.HandleFunc("/verify", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fv.face)
	})
	mux.HandleFunc("/profile.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("profile-image-bytes"))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	storage := &CloudinaryClient{
		URL:          server.URL + "/image/upload",
		UploadPreset: "test",
		HTTPClient:   server.Client(),
	}
	verifier := NewVerifierClient(server.URL, 5*time.Second)
	return storage, verifier, server
}

func TestPipelinePassesWithoutProfileImage(t *testing.T) {
	fv := &fakeVerifier{
		ai:  AIAnalysis{AIGenerated: false, Confidence: 0.1},
		dup: DuplicateResult{Duplicate: false},
	}
	storage, verifier, _ := newTestServers(t, fv)
	p := NewProofPipeline(storage, verifier)

	result := p.Run(context.Background(), "user1", 1, "", "proof.jpg", []byte("img"))
	if !result.Passed {
		t.Fatalf("Expected pipeline to pass, got reason %s: %s", result.Reason, result.Message)
	}
	if result.Statuses.Face != StageSkip {
		t.Errorf("Expected face stage skip without a profile image, got %s", result.Statuses.Face)
	}
	if result.Statuses.AI != StagePass || result.Statuses.Duplicate != StagePass {
		t.Errorf("Expected ai/duplicate pass, got %+v", result.Statuses)
	}
	if result.ProofURL != "https://cdn.example/proof.jpg" {
		t.Errorf("Expected proof URL from storage, got %s", result.ProofURL)
	}
}

func TestPipelineRejectsAIGeneratedAtThreshold(t *testing.T) {
	fv := &fakeVerifier{
		ai: AIAnalysis{AIGenerated: true, Confidence: 0.7},
	}
	storage, verifier, _ := newTestServers(t, fv)
	p := NewProofPipeline(storage, verifier)

	result := p.Run(context.Background(), "user1", 1, "", "proof.jpg", []byte("img"))
	if result.Passed {
		t.Fatalf("Expected rejection at confidence 0.7")
	}
	if result.Reason != ReasonAIGenerated {
		t.Errorf("Expected reason %s, got %s", ReasonAIGenerated, result.Reason)
	}
	if result.Statuses.AI != StageFail {
		t.Errorf("Expected ai stage fail, got %s", result.Statuses.AI)
	}
	if result.Statuses.Duplicate != StagePending {
		t.Errorf("Expected duplicate stage untouched after AI failure, got %s", result.Statuses.Duplicate)
	}
}

func TestPipelineAllowsFlaggedImageBelowThreshold(t *testing.T) {
	fv := &fakeVerifier{
		ai:  AIAnalysis{AIGenerated: true, Confidence: 0.5},
		dup: DuplicateResult{Duplicate: false},
	}
	storage, verifier, _ := newTestServers(t, fv)
	p := NewProofPipeline(storage, verifier)

	result := p.Run(context.Background(), "user1", 1, "", "proof.jpg", []byte("img"))
	if !result.Passed {
		t.Fatalf("Expected pass below threshold, got reason %s", result.Reason)
	}
}

func TestPipelineRejectsDuplicateWithDetails(t *testing.T) {
	fv := &fakeVerifier{
		ai: AIAnalysis{AIGenerated: false, Confidence: 0.1},
		dup: DuplicateResult{
			Duplicate:   true,
			Method:      "clip",
			Score:       0.93,
			MatchedDate: "2025-03-07",
		},
	}
	storage, verifier, _ := newTestServers(t, fv)
	p := NewProofPipeline(storage, verifier)

	result := p.Run(context.Background(), "user1", 1, "", "proof.jpg", []byte("img"))
	if result.Passed {
		t.Fatalf("Expected duplicate rejection")
	}
	if result.Reason != ReasonDuplicate {
		t.Errorf("Expected reason %s, got %s", ReasonDuplicate, result.Reason)
	}
	if !strings.Contains(result.Message, "93%") {
		t.Errorf("Expected similarity percentage in message, got %q", result.Message)
	}
	if !strings.Contains(result.Message, "2025-03-07") {
		t.Errorf("Expected matched date in message, got %q", result.Message)
	}
	if result.Statuses.Face != StagePending {
		t.Errorf("Expected face stage untouched after duplicate failure, got %s", result.Statuses.Face)
	}
}

func TestPipelineFaceMismatch(t *testing.T) {
	verified := false
	fv := &fakeVerifier{
		ai:   AIAnalysis{AIGenerated: false, Confidence: 0.1},
		dup:  DuplicateResult{Duplicate: false},
		face: map[string]interface{}{"verified": verified, "distance": 0.8, "threshold": 0.4},
	}
	storage, verifier, server := newTestServers(t, fv)
	p := NewProofPipeline(storage, verifier)
	p.HTTPClient = server.Client()

	result := p.Run(context.Background(), "user1", 1, server.URL+"/profile.jpg", "proof.jpg", []byte("img"))
	if result.Passed {
		t.Fatalf("Expected face mismatch rejection")
	}
	if result.Reason != ReasonFaceMismatch {
		t.Errorf("Expected reason %s, got %s", ReasonFaceMismatch, result.Reason)
	}
	if result.Statuses.Face != StageFail {
		t.Errorf("Expected face stage fail, got %s", result.Statuses.Face)
	}
}

func TestPipelineFacePass(t *testing.T) {
	fv := &fakeVerifier{
		ai:   AIAnalysis{AIGenerated: false, Confidence: 0.1},
		dup:  DuplicateResult{Duplicate: false},
		face: map[string]interface{}{"verified": true, "distance": 0.2, "threshold": 0.4},
	}
	storage, verifier, server := newTestServers(t, fv)
	p := NewProofPipeline(storage, verifier)
	p.HTTPClient = server.Client()

	result := p.Run(context.Background(), "user1", 1, server.URL+"/profile.jpg", "proof.jpg", []byte("img"))
	if !result.Passed {
		t.Fatalf("Expected full pass, got reason %s: %s", result.Reason, result.Message)
	}
	if result.Statuses.Face != StagePass {
		t.Errorf("Expected face stage pass, got %s", result.Statuses.Face)
	}
}

func TestPipelineNoFaceDetected(t *testing.T) {
	fv := &fakeVerifier{
		ai:   AIAnalysis{AIGenerated: false, Confidence: 0.1},
		dup:  DuplicateResult{Duplicate: false},
		face: map[string]interface{}{"verified": false, "error": "Face could not be detected in image"},
	}
	storage, verifier, server := newTestServers(t, fv)
	p := NewProofPipeline(storage, verifier)
	p.HTTPClient = server.Client()

	result := p.Run(context.Background(), "user1", 1, server.URL+"/profile.jpg", "proof.jpg", []byte("img"))
	if result.Passed {
		t.Fatalf("Expected no-face rejection")
	}
	if result.Reason != ReasonNoFace {
		t.Errorf("Expected reason %s, got %s", ReasonNoFace, result.Reason)
	}
}

func TestPipelineUploadFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage down", http.StatusInternalServerError)
	}))
	t.Cleanup(failing.Close)

	storage := &CloudinaryClient{URL: failing.URL, UploadPreset: "test", HTTPClient: failing.Client()}
	verifier := NewVerifierClient(failing.URL, time.Second)
	p := NewProofPipeline(storage, verifier)

	result := p.Run(context.Background(), "user1", 1, "", "proof.jpg", []byte("img"))
	if result.Passed {
		t.Fatalf("Expected upload failure")
	}
	if result.Reason != ReasonUploadFailed {
		t.Errorf("Expected reason %s, got %s", ReasonUploadFailed, result.Reason)
	}
	if result.Message != "Failed to upload image to cloud storage" {
		t.Errorf("Unexpected message: %q", result.Message)
	}
	if result.Statuses.AI != StagePending {
		t.Errorf("Expected ai stage untouched after upload failure, got %s", result.Statuses.AI)
	}
}
