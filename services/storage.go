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

// CloudinaryClient uploads proof images to Cloudinary using an
// unsigned upload preset
type CloudinaryClient struct {
	URL          string
	UploadPreset string
	HTTPClient   *http.Client
}

var cloudinaryClient *CloudinaryClient

// InitStorageService configures the Cloudinary upload client
func InitStorageService(cfg *config.Config) {
	cloudinaryClient = NewCloudinaryClient(cfg.Cloudinary.CloudName, cfg.Cloudinary.UploadPreset)
}

// GetStorageClient returns the configured upload client
func GetStorageClient() *CloudinaryClient {
	return cloudinaryClient
}

func NewCloudinaryClient(cloudName, uploadPreset string) *CloudinaryClient {
	return &CloudinaryClient{
		URL:          fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", cloudName),
		UploadPreset: uploadPreset,
		HTTPClient:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload sends the image as a multipart form and returns the durable
// secure URL Cloudinary assigns to it
func (c *CloudinaryClient) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read proof image: %w", err)
	}
	if err := writer.WriteField("upload_preset", c.UploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("storage API error: %s", string(respBody))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("upload response missing secure_url")
	}

	return result.SecureURL, nil
}
