package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Stage statuses reported back with every settlement response
const (
	StagePending = "pending"
	StagePass    = "pass"
	StageFail    = "fail"
	StageSkip    = "skip"
)

// Rejection reasons
const (
	ReasonUploadFailed  = "upload_failed"
	ReasonAIGenerated   = "ai_generated"
	ReasonDuplicate     = "duplicate"
	ReasonFaceMismatch  = "face_mismatch"
	ReasonFaceError     = "face_error"
	ReasonNoFace        = "no_face_detected"
	ReasonVerifierError = "verifier_error"
)

// StageStatuses is the per-check status record
type StageStatuses struct {
	AI        string `json:"ai"`
	Duplicate string `json:"duplicate"`
	Face      string `json:"face"`
}

// PipelineResult is the outcome of one proof verification attempt.
// Failures are terminal for the attempt; there are no retries.
type PipelineResult struct {
	Passed    bool             `json:"passed"`
	Reason    string           `json:"reason,omitempty"`
	Message   string           `json:"message,omitempty"`
	ProofURL  string           `json:"proofUrl,omitempty"`
	Statuses  StageStatuses    `json:"statuses"`
	AI        *AIAnalysis      `json:"ai,omitempty"`
	Duplicate *DuplicateResult `json:"duplicate,omitempty"`
	Face      *FaceResult      `json:"face,omitempty"`
}

// ProofPipeline runs the proof checks as a linear chain: upload, AI
// authenticity, duplicate, face. Each stage consumes the previous
// stage's output and the first failure stops the chain.
type ProofPipeline struct {
	Storage    *CloudinaryClient
	Verifier   *VerifierClient
	HTTPClient *http.Client
}

// NewProofPipeline builds a pipeline over the given clients
func NewProofPipeline(storage *CloudinaryClient, verifier *VerifierClient) *ProofPipeline {
	return &ProofPipeline{
		Storage:    storage,
		Verifier:   verifier,
		HTTPClient: http.DefaultClient,
	}
}

// Run verifies a proof image for a user and mission. profileImageURL
// may be empty, in which case the face check is skipped rather than
// failed.
func (p *ProofPipeline) Run(ctx context.Context, userID string, missionID int, profileImageURL, filename string, proof []byte) *PipelineResult {
	result := &PipelineResult{
		Statuses: StageStatuses{AI: StagePending, Duplicate: StagePending, Face: StagePending},
	}

	// Stage 1: upload to object storage
	proofURL, err := p.Storage.Upload(ctx, filename, bytes.NewReader(proof))
	if err != nil {
		result.Reason = ReasonUploadFailed
		result.Message = "Failed to upload image to cloud storage"
		return result
	}
	result.ProofURL = proofURL

	// Stage 2: AI authenticity
	ai, err := p.Verifier.AnalyzeAI(ctx, proofURL)
	if err != nil {
		result.Statuses.AI = StageFail
		result.Reason = ReasonVerifierError
		result.Message = "Image verification is unavailable right now. Please try again."
		return result
	}
	result.AI = ai
	if ai.AIGenerated && ai.Confidence >= AIConfidenceThreshold {
		result.Statuses.AI = StageFail
		result.Reason = ReasonAIGenerated
		result.Message = fmt.Sprintf("This image appears to be AI-generated (%.0f%% confidence) and cannot be accepted as proof.", ai.Confidence*100)
		return result
	}
	result.Statuses.AI = StagePass

	// Stage 3: duplicate submission
	dup, err := p.Verifier.CheckDuplicate(ctx, proofURL, userID, missionID)
	if err != nil {
		result.Statuses.Duplicate = StageFail
		result.Reason = ReasonVerifierError
		result.Message = "Duplicate check is unavailable right now. Please try again."
		return result
	}
	result.Duplicate = dup
	if dup.Duplicate {
		result.Statuses.Duplicate = StageFail
		result.Reason = ReasonDuplicate
		result.Message = duplicateMessage(dup)
		return result
	}
	result.Statuses.Duplicate = StagePass

	// Stage 4: face verification, skipped without a profile image
	if profileImageURL == "" {
		result.Statuses.Face = StageSkip
		result.Passed = true
		return result
	}

	profileImage, err := p.fetchImage(ctx, profileImageURL)
	if err != nil {
		result.Statuses.Face = StageFail
		result.Reason = ReasonFaceError
		result.Message = "Face verification could not be completed. Please try again."
		return result
	}

	face, err := p.Verifier.VerifyFace(ctx, bytes.NewReader(profileImage), bytes.NewReader(proof))
	if err != nil {
		result.Statuses.Face = StageFail
		result.Reason = ReasonFaceError
		result.Message = "Face verification could not be completed. Please try again."
		return result
	}
	result.Face = face

	switch {
	case face.Error != "" && strings.Contains(strings.ToLower(face.Error), "face"):
		result.Statuses.Face = StageFail
		result.Reason = ReasonNoFace
		result.Message = "No face could be detected in your profile or proof photo."
	case face.Error != "" || face.Verified == nil:
		result.Statuses.Face = StageFail
		result.Reason = ReasonFaceError
		result.Message = "Face verification could not be completed. Please try again."
	case !*face.Verified:
		result.Statuses.Face = StageFail
		result.Reason = ReasonFaceMismatch
		result.Message = "Face verification failed. Make sure you are visible in the proof photo."
	default:
		result.Statuses.Face = StagePass
		result.Passed = true
	}

	return result
}

func duplicateMessage(dup *DuplicateResult) string {
	msg := fmt.Sprintf("This image is %.0f%% similar to a proof you already submitted", dup.Score*100)
	if dup.MatchedDate != "" {
		msg += " on " + dup.MatchedDate
	}
	return msg + ". Please submit a new photo."
}

func (p *ProofPipeline) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
