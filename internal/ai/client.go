// Package ai wraps the OpenAI API for coaching insights and food photo
// analysis. The server relays prompts and images on behalf of the client so
// the API key never leaves the backend.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// systemPrompts holds the coaching persona per insight category. Unknown
// categories fall back to the general prompt.
var systemPrompts = map[string]string{
	"steps":    "You are a fitness coach. Give concise, encouraging advice about daily step counts and walking habits. Keep answers under 150 words.",
	"running":  "You are a running coach. Give concise, practical advice about running distance, pace and recovery. Keep answers under 150 words.",
	"water":    "You are a hydration coach. Give concise, practical advice about daily water intake. Keep answers under 150 words.",
	"sleep":    "You are a sleep coach. Give concise, practical advice about sleep duration and sleep quality. Keep answers under 150 words.",
	"calories": "You are a fitness coach. Give concise, practical advice about calorie burn and energy balance. Keep answers under 150 words.",
	"gym":      "You are a personal trainer. Give concise, practical advice about workout frequency, variety and recovery. Keep answers under 150 words.",
	"food":     "You are a nutrition coach. Give concise, practical advice about calorie balance and macronutrients. Keep answers under 150 words.",
	"general":  "You are a friendly health and fitness coach. Give concise, encouraging advice based on the user's activity data. Keep answers under 150 words.",
}

// nutritionFallback is returned when the vision model's answer cannot be
// parsed as structured nutrition data.
var nutritionFallback = model.NutritionEstimate{
	Name:     "Food",
	Calories: 250,
	Carbs:    30,
	Protein:  15,
	Fat:      10,
}

// Client wraps the OpenAI SDK with retry logic and logging.
type Client struct {
	client      *openai.Client
	chatModel   string
	visionModel string
	logger      *zap.Logger
	maxRetries  int
	baseDelay   time.Duration
}

// NewClient creates a new OpenAI client.
func NewClient(apiKey, baseURL, chatModel, visionModel string, logger *zap.Logger) (*Client, error) {
	if apiKey == "" || chatModel == "" || visionModel == "" {
		return nil, fmt.Errorf("apiKey, chatModel, and visionModel are required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)

	return &Client{
		client:      &client,
		chatModel:   chatModel,
		visionModel: visionModel,
		logger:      logger,
		maxRetries:  3,
		baseDelay:   time.Second,
	}, nil
}

// Analyze relays a coaching question to the chat model, priming it with the
// category's system prompt.
func (c *Client) Analyze(ctx context.Context, category, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}

	system, ok := systemPrompts[category]
	if !ok {
		system = systemPrompts["general"]
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(prompt),
	}

	return c.complete(ctx, c.chatModel, messages)
}

// DetectFood sends a base64-encoded food photo to the vision model and
// parses the nutrition estimate out of its answer. When parsing fails the
// fixed fallback estimate is returned rather than an error, so a fuzzy
// model answer never breaks the logging flow.
func (c *Client) DetectFood(ctx context.Context, imageBase64 string) (*model.NutritionEstimate, error) {
	if imageBase64 == "" {
		return nil, fmt.Errorf("image is required")
	}

	format := sniffImageFormat(imageBase64)
	dataURL := fmt.Sprintf("data:image/%s;base64,%s", format, imageBase64)

	const instruction = "Identify the food in this photo and estimate its nutrition. " +
		"Answer with only a JSON object: " +
		`{"name": string, "calories": number, "carbs": number, "protein": number, "fat": number}. ` +
		"Calories in kcal, macros in grams, for the portion shown."

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(instruction),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL:    dataURL,
				Detail: "low",
			}),
		}),
	}

	raw, err := c.complete(ctx, c.visionModel, messages)
	if err != nil {
		return nil, err
	}

	estimate := parseNutrition(raw)

	c.logger.Info("food detected",
		zap.String("image_format", format),
		zap.String("name", estimate.Name),
		zap.Float64("calories", estimate.Calories),
	)

	return &estimate, nil
}

// complete sends one chat completion request with exponential backoff.
func (c *Client) complete(ctx context.Context, chatModel string, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	startTime := time.Now()
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.baseDelay * time.Duration(1<<uint(attempt-1))
			c.logger.Info("retrying OpenAI request",
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := c.completeOnce(ctx, chatModel, messages)
		if err == nil {
			c.logger.Info("OpenAI request completed",
				zap.Duration("processing_time", time.Since(startTime)),
				zap.Int("attempts", attempt+1),
			)
			return result, nil
		}

		lastErr = err
		if !isRetryable(err) {
			c.logger.Error("non-retryable OpenAI error",
				zap.Error(err),
				zap.Int("attempt", attempt+1),
			)
			break
		}

		c.logger.Warn("OpenAI request failed, will retry",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
		)
	}

	c.logger.Error("OpenAI request failed after retries",
		zap.Error(lastErr),
		zap.Duration("total_time", time.Since(startTime)),
		zap.Int("max_retries", c.maxRetries),
	)

	return "", fmt.Errorf("OpenAI request failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) completeOnce(ctx context.Context, chatModel string, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	requestStart := time.Now()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(chatModel),
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in response")
	}

	c.logger.Info("OpenAI token usage",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Int64("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("request_time", time.Since(requestStart)),
	)

	return content, nil
}

// isRetryable classifies an error for the retry loop. Authentication and
// invalid-request failures never succeed on retry.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "authentication") || strings.Contains(errStr, "unauthorized") || strings.Contains(errStr, "401") {
		return false
	}
	if strings.Contains(errStr, "invalid") || strings.Contains(errStr, "bad request") || strings.Contains(errStr, "400") {
		return false
	}
	return true
}

// sniffImageFormat detects the image type from the base64 payload's leading
// bytes. JPEG is the default since phone cameras produce it.
func sniffImageFormat(imageBase64 string) string {
	switch {
	case strings.HasPrefix(imageBase64, "/9j/"):
		return "jpeg"
	case strings.HasPrefix(imageBase64, "iVBORw0KGgo"):
		return "png"
	case strings.HasPrefix(imageBase64, "UklGR"):
		return "webp"
	default:
		return "jpeg"
	}
}

// parseNutrition extracts a nutrition estimate from the model's answer. It
// first strips markdown code fences and tries strict JSON; if that fails it
// falls back to scraping numbers out of free text, and finally to the fixed
// fallback estimate.
func parseNutrition(raw string) model.NutritionEstimate {
	cleaned := stripCodeFences(raw)

	if start, end := strings.Index(cleaned, "{"), strings.LastIndex(cleaned, "}"); start >= 0 && end > start {
		var parsed struct {
			Name     string  `json:"name"`
			Calories float64 `json:"calories"`
			Carbs    float64 `json:"carbs"`
			Protein  float64 `json:"protein"`
			Fat      float64 `json:"fat"`
		}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err == nil && parsed.Name != "" {
			return model.NutritionEstimate{
				Name:     parsed.Name,
				Calories: parsed.Calories,
				Carbs:    parsed.Carbs,
				Protein:  parsed.Protein,
				Fat:      parsed.Fat,
			}
		}
	}

	return scrapeNutrition(cleaned)
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var (
	caloriesPattern = regexp.MustCompile(`(?i)calories?\D{0,10}(\d+(?:\.\d+)?)`)
	carbsPattern    = regexp.MustCompile(`(?i)carbs?\D{0,10}(\d+(?:\.\d+)?)`)
	proteinPattern  = regexp.MustCompile(`(?i)protein\D{0,10}(\d+(?:\.\d+)?)`)
	fatPattern      = regexp.MustCompile(`(?i)fat\D{0,10}(\d+(?:\.\d+)?)`)
)

// scrapeNutrition pulls numbers out of free text, falling back to the
// fixed defaults for any field it cannot find.
func scrapeNutrition(text string) model.NutritionEstimate {
	estimate := nutritionFallback

	if v, ok := firstNumber(caloriesPattern, text); ok {
		estimate.Calories = v
	}
	if v, ok := firstNumber(carbsPattern, text); ok {
		estimate.Carbs = v
	}
	if v, ok := firstNumber(proteinPattern, text); ok {
		estimate.Protein = v
	}
	if v, ok := firstNumber(fatPattern, text); ok {
		estimate.Fat = v
	}

	if line := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0]); line != "" && !strings.ContainsAny(line, "{}") && len(line) <= 60 {
		estimate.Name = line
	}

	return estimate
}

func firstNumber(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) != 2 {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
