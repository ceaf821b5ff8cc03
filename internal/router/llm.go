package router

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/wukongd/wukong/pkg/models"
)

// classifyPrompt asks for JSON only so the response parses without a
// second round trip.
const classifyPrompt = `You are a task classifier for a code agent system.

Classify the following task:
<task>%s</task>

The rule layer guessed track=%s with confidence %.2f.

Respond with JSON only (no markdown, no explanation):
{"track": "feature|fix|refactor|research|direct", "complexity": "simple|medium|complex", "confidence": 0.0-1.0, "reasoning": "brief explanation"}

Track definitions:
- feature: adding new functionality
- fix: fixing bugs, errors, crashes
- refactor: cleanup and restructuring without new features
- research: exploration and investigation
- direct: trivial direct actions

Complexity definitions:
- simple: single file, small diff
- medium: 2-3 files, clear approach
- complex: 4+ files or architectural change`

// LLMClassifierConfig configures the language-model classifier.
type LLMClassifierConfig struct {
	// Model is the model to use. Empty selects a fast default.
	Model anthropic.Model
	// APIKey is the Anthropic API key. Empty falls back to the
	// ANTHROPIC_API_KEY environment variable.
	APIKey string
	// UseAWSBedrock routes calls through AWS Bedrock instead of the
	// direct API.
	UseAWSBedrock bool
	// AWSRegion is the Bedrock region (e.g. "us-west-2").
	AWSRegion string
	// AWSProfile is the optional AWS profile name.
	AWSProfile string
	// MaxTokens bounds the response size. Zero selects a default.
	MaxTokens int64
}

// LLMClassifier classifies tasks with a language model. It only runs
// when the rule layer was not confident.
type LLMClassifier struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// Compile-time verification that LLMClassifier implements Classifier.
var _ Classifier = (*LLMClassifier)(nil)

// NewLLMClassifier creates a classifier backed by the Anthropic API or
// AWS Bedrock.
func NewLLMClassifier(cfg LLMClassifierConfig) (*LLMClassifier, error) {
	var opts []option.RequestOption

	if cfg.UseAWSBedrock {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.AWSProfile))
		}
		opts = append(opts, bedrock.WithLoadDefaultConfig(context.Background(), loadOpts...))
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	model := cfg.Model
	if model == "" {
		model = anthropic.ModelClaude3_5Haiku20241022
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 256
	}

	return &LLMClassifier{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Classify sends the task to the model and parses the JSON response.
func (c *LLMClassifier) Classify(ctx context.Context, task string, prior models.Classification) (*PlanResponse, error) {
	prompt := fmt.Sprintf(classifyPrompt, task, prior.Track, prior.Confidence)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("classify request: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += variant.Text
		}
	}

	return parsePlanResponse(text)
}

// parsePlanResponse decodes the model's JSON, tolerating a markdown
// code fence and clamping out-of-range values. Unknown tracks and
// complexities degrade to safe defaults instead of failing: the router
// validates the final plan anyway.
func parsePlanResponse(text string) (*PlanResponse, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) >= 3 {
			text = strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	var raw struct {
		Track      string         `json:"track"`
		Complexity string         `json:"complexity"`
		Confidence float64        `json:"confidence"`
		Reasoning  string         `json:"reasoning"`
		Phases     []models.Phase `json:"phases"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parse classifier response: %w", err)
	}

	track := models.Track(strings.ToLower(raw.Track))
	if !track.Valid() {
		track = models.TrackDirect
	}

	complexity := models.Complexity(strings.ToLower(raw.Complexity))
	if !complexity.Valid() {
		complexity = models.ComplexityMedium
	}

	confidence := raw.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &PlanResponse{
		Track:      track,
		Complexity: complexity,
		Confidence: roundConfidence(confidence),
		Reasoning:  raw.Reasoning,
		Phases:     raw.Phases,
	}, nil
}
