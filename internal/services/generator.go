package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/gemini"
)

// Generator handles the free-form generation and story-improvement calls.
type Generator struct {
	log *zap.Logger
	gen TextGenerator
}

func NewGenerator(log *zap.Logger, gen TextGenerator) *Generator {
	return &Generator{log: log, gen: gen}
}

// GenerateRequest mirrors the client's generation call.
type GenerateRequest struct {
	Prompt  string `json:"prompt"`
	Type    string `json:"type"`
	Context string `json:"context"`
}

// GenerateResult carries either parsed JSON (structured types) or plain
// text under the "content" key.
type GenerateResult struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Generate builds the type-specific prompt, calls the model, and parses the
// response for structured types, falling back to plain text when the model
// did not return usable JSON.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &ValidationError{Missing: []string{"prompt"}}
	}

	typ := req.Type
	if typ == "" {
		typ = gemini.TypeGeneral
	}

	text, err := g.gen.Generate(ctx, gemini.GenerationPrompt(req.Prompt, typ, req.Context))
	if err != nil {
		return nil, fmt.Errorf("generation call failed: %w", err)
	}

	if gemini.StructuredType(typ) {
		if payload, ok := gemini.ExtractJSON(text); ok {
			var data any
			if err := json.Unmarshal([]byte(payload), &data); err == nil {
				return &GenerateResult{Type: typ, Data: data}, nil
			}
			g.log.Warn("Generation response JSON failed to parse, returning raw text", zap.String("type", typ))
		}
	}
	return &GenerateResult{Type: typ, Data: map[string]any{"content": text}}, nil
}

// ImproveRequest asks for a rewritten version of an existing story.
type ImproveRequest struct {
	Story    string `json:"story"`
	Role     string `json:"role"`
	Industry string `json:"industry"`
	Feedback string `json:"feedback"`
}

type ImproveResult struct {
	ImprovedStory string `json:"improvedStory"`
	Rationale     string `json:"rationale"`
}

// Improve rewrites a story with the ABT framework applied. When the model's
// reply has no parseable JSON, the whole reply is treated as the improved
// story.
func (g *Generator) Improve(ctx context.Context, req ImproveRequest) (*ImproveResult, error) {
	var missing []string
	if strings.TrimSpace(req.Story) == "" {
		missing = append(missing, "story")
	}
	if strings.TrimSpace(req.Role) == "" {
		missing = append(missing, "role")
	}
	if strings.TrimSpace(req.Industry) == "" {
		missing = append(missing, "industry")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	text, err := g.gen.Generate(ctx, gemini.ImprovePrompt(req.Story, req.Role, req.Industry, req.Feedback))
	if err != nil {
		return nil, fmt.Errorf("improve call failed: %w", err)
	}

	if payload, ok := gemini.ExtractJSON(text); ok {
		var result ImproveResult
		if err := json.Unmarshal([]byte(payload), &result); err == nil && result.ImprovedStory != "" {
			return &result, nil
		}
	}
	g.log.Warn("Improve response had no usable JSON, returning raw text")
	return &ImproveResult{ImprovedStory: strings.TrimSpace(text)}, nil
}
