package scanning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"waybill-tracker/internal/order"
)

// Gemini implements the Scanner interface using Google Gemini
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Scanner instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ExtractOrders sends the batch of waybill images to Gemini and parses the
// extracted orders
func (g *Gemini) ExtractOrders(images []ImageInput, platform string) ([]order.OrderData, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("at least one image is required")
	}

	// Batches of phone photos can take a while to process
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	parts := make([]genai.Part, 0, len(images)+1)
	for _, img := range images {
		pngData, err := preparePNG(img)
		if err != nil {
			return nil, err
		}
		// genai.ImageData expects just the format suffix, and preparePNG
		// normalizes everything to PNG
		parts = append(parts, genai.ImageData("png", pngData))
	}
	parts = append(parts, genai.Text(waybillScanPrompt(platform, len(images))))

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	orders, err := parseOrderJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing order data: %w", err)
	}

	return orders, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
