// Copyright 2025 Veritell Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/veritell/matchbook/core"
	"github.com/veritell/matchbook/oracle"
)

// Judge implements oracle.Oracle using OpenAI-compatible chat APIs.
type Judge struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

var _ oracle.Oracle = (*Judge)(nil)

// verdict is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type verdict struct {
	IsMatch    bool    `json:"is_match"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// newJudge is an internal constructor that returns the concrete type.
func newJudge(config *oracle.Config) (*Judge, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Judge{
		client:  client,
		timeout: config.Timeout,
		logger:  slog.Default().With("component", "openai-judge"),
	}, nil
}

// NewJudge creates a new pair judge using the provided configuration.
//
// Returns oracle.Oracle interface to enforce abstraction.
func NewJudge(config *oracle.Config) (oracle.Oracle, error) {
	return newJudge(config)
}

// Close releases resources. The underlying HTTP client needs no teardown.
func (j *Judge) Close() error {
	return nil
}

// Judge decides whether two names refer to the same real-world entity.
// The lexical kernel scores are included in the prompt as evidence.
func (j *Judge) Judge(ctx context.Context, nameA, nameB string, scores core.KernelScoreSet) (*oracle.Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(judgmentSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildPairPrompt(nameA, nameB, scores)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result verdict
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := j.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			j.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, fmt.Errorf("%w: %w", oracle.ErrJudgmentFailed, err)
		}

		if len(response.Choices) < 1 {
			j.logger.Debug("no choices returned from model")
			return nil, oracle.ErrInvalidResponse
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			j.logger.Warn("error parsing judge response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		j.logger.Error("failed to parse judge response after retries", "err", lastErr)
		return nil, fmt.Errorf("%w: %w", oracle.ErrInvalidResponse, lastErr)
	}

	if err := core.ValidateConfidence(result.Confidence); err != nil {
		j.logger.Warn("judge returned out-of-range confidence", "confidence", result.Confidence)
		return nil, fmt.Errorf("%w: %w", oracle.ErrInvalidResponse, err)
	}

	j.logger.Debug("pair judged",
		"is_match", result.IsMatch,
		"confidence", result.Confidence)

	return &oracle.Verdict{
		IsMatch:    result.IsMatch,
		Confidence: result.Confidence,
		Reasoning:  strings.TrimSpace(result.Reasoning),
	}, nil
}
