package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"bingo/config"
)

// AIConfidenceThreshold is the synthetic-image confidence at or above
// which a flagged proof is rejected
const AIConfidenceThreshold = 0.7

// VerifierClient talks to the image verification microservice
type VerifierClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

var verifierClient *VerifierClient

// InitVerifierService configures the verification client
func InitVerifierService(cfg *config.Config) {
	verifierClient = NewVerifierClient(cfg.Verifier.BaseURL, time.Duration(cfg.Verifier.Timeout)*time.Second)
}

// GetVerifierClient returns the configured verification client
func GetVerifierClient() *VerifierClient {
	return verifierClient
}

func NewVerifierClient(baseURL string, timeout time.Duration) *VerifierClient {
	return &VerifierClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// AIAnalysis is the verifier's synthetic-image report
type AIAnalysis struct {
	AIGenerated bool    `json:"is_ai_generated"`
	Confidence  float64 `json:"confidence"`
	Details     string  `json:"details,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// DuplicateResult is the verifier's similarity report against the
// user's previously approved proofs
type DuplicateResult struct {
	Duplicate    bool    `json:"duplicate"`
	Method       string  `json:"method,omitempty"`
	Score        float64 `json:"score,omitempty"`
	MatchedImage string  `json:"matched_image,omitempty"`
	MatchedDate  string  `json:"matched_date,omitempty"`
	SavedID      string  `json:"saved_id,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// FaceResult is the verifier's face-match report. Verified is a
// pointer because the service omits it when no face was detected.
type FaceResult struct {
	Verified  *bool   `json:"verified"`
	Distance  float64 `json:"distance,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// AnalyzeAI asks the verifier whether the image looks AI-generated
func (c *VerifierClient) AnalyzeAI(ctx context.Context, imageURL string) (*AIAnalysis, error) {
	var result AIAnalysis
	err := c.postJSON(ctx, "/analyze_ai_only", map[string]string{"image_url": imageURL}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckDuplicate asks the verifier whether the image matches any of
// the user's earlier approved proofs
func (c *VerifierClient) CheckDuplicate(ctx context.Context, imageURL, userID string, missionID int) (*DuplicateResult, error) {
	payload := map[string]interface{}{
		"image_url":  imageURL,
		"user_id":    userID,
		"mission_id": missionID,
	}
	var result DuplicateResult
	if err := c.postJSON(ctx, "/check_duplicate", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyFace sends the stored profile image and the new proof as two
// files and returns the match verdict
func (c *VerifierClient) VerifyFace(ctx context.Context, profileImage, proofImage io.Reader) (*FaceResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image1", "profile.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to build verify form: %w", err)
	}
	if _, err := io.Copy(part, profileImage); err != nil {
		return nil, fmt.Errorf("failed to read profile image: %w", err)
	}

	part, err = writer.CreateFormFile("image2", "proof.jpg")
	if err != nil {
		return nil, fmt.Errorf("failed to build verify form: %w", err)
	}
	if _, err := io.Copy(part, proofImage); err != nil {
		return nil, fmt.Errorf("failed to read proof image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build verify form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/verify", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result FaceResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse verify response: %w", err)
	}
	return &result, nil
}

func (c *VerifierClient) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *VerifierClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verifier API error: %s", string(body))
	}
	return body, nil
}
