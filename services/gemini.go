package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"bingo/models"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// AssistantSystemPrompt frames the assistant as a waste-management
// helper
const AssistantSystemPrompt = `You are BinGo Assistant, a helpful AI assistant specialized in waste management and environmental topics. You can:

1. Answer questions about waste management, recycling, and environmental practices
2. Help identify if items are biodegradable or not
3. Provide tips on sustainable living and waste reduction
4. Give advice on proper disposal methods for different types of waste
5. Suggest eco-friendly alternatives to common products
6. Explain composting and recycling processes
7. Provide information about environmental impact of different materials

Be friendly, informative, and environmentally conscious in your responses. Keep your answers concise but helpful. Always encourage sustainable practices and environmental responsibility.`

const imageAnalysisPrompt = `Analyze this waste item image and provide a detailed response covering:

1. **Item Identification**: What specific type of waste/item this is
2. **Biodegradability**: Is it biodegradable or non-biodegradable? Explain why.
3. **Disposal Method**: How should this item be properly disposed of?
4. **Recycling Options**: Can it be recycled? If yes, how and where?
5. **Environmental Impact**: Brief note on its environmental impact
6. **Eco-friendly Alternatives**: Suggest sustainable alternatives if applicable

Please be concise but informative, and focus on practical waste management advice.`

var geminiClient *genai.Client

// InitAssistantService creates the Gemini client used by the chat
// assistant and image analysis endpoints
func InitAssistantService(apiKey string) error {
	config := &genai.ClientConfig{}
	if apiKey != "" {
		config.APIKey = apiKey
	}
	client, err := genai.NewClient(context.Background(), config)
	if err != nil {
		return fmt.Errorf("failed to init gemini client: %w", err)
	}
	geminiClient = client
	return nil
}

// GenerateChatReply answers the latest user message given the recent
// conversation history (last 10 messages, system prompt excluded)
func GenerateChatReply(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}

	recent := history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	var prompt strings.Builder
	prompt.WriteString(AssistantSystemPrompt)
	prompt.WriteString("\n\nConversation history:\n")
	for _, msg := range recent {
		if msg.Role == "system" {
			continue
		}
		speaker := "Assistant"
		if msg.Role == "user" {
			speaker = "User"
		}
		prompt.WriteString(fmt.Sprintf("%s: %s\n", speaker, msg.Content))
	}
	prompt.WriteString(fmt.Sprintf("\nPlease respond to the user's latest message: %q", message))

	resp, err := geminiClient.Models.GenerateContent(ctx, defaultGeminiModel, genai.Text(prompt.String()), nil)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

// AnalyzeWasteImage describes a waste item photo and how to dispose of
// it. imageBase64 is the raw base64 payload without a data URI prefix.
func AnalyzeWasteImage(ctx context.Context, imageBase64 string) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}

	imageData, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return "", fmt.Errorf("invalid image data: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromText(imageAnalysisPrompt),
		genai.NewPartFromBytes(imageData, "image/jpeg"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := geminiClient.Models.GenerateContent(ctx, defaultGeminiModel, contents, nil)
	if err != nil {
		return "", err
	}
	return cleanModelOutput(resp.Text()), nil
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
