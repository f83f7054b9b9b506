package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maniacmeyers/interview-maniac-app/internal/gemini"
)

func TestGenerateStructuredType(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		"```json\n{\"questions\": [\"Tell me about a challenge you overcame.\"]}\n```",
	}}
	g := NewGenerator(zap.NewNop(), gen)

	res, err := g.Generate(context.Background(), GenerateRequest{
		Prompt: "backend engineer interview",
		Type:   gemini.TypeInterviewQuestions,
	})
	require.NoError(t, err)

	require.Equal(t, gemini.TypeInterviewQuestions, res.Type)
	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	require.Contains(t, data, "questions")
}

func TestGenerateFallsBackToText(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"Just some prose, no JSON here."}}
	g := NewGenerator(zap.NewNop(), gen)

	res, err := g.Generate(context.Background(), GenerateRequest{
		Prompt: "anything",
		Type:   gemini.TypeInterviewQuestions,
	})
	require.NoError(t, err)

	data, ok := res.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Just some prose, no JSON here.", data["content"])
}

func TestGenerateEmptyPrompt(t *testing.T) {
	g := NewGenerator(zap.NewNop(), &fakeGenerator{replies: []string{"x"}})

	_, err := g.Generate(context.Background(), GenerateRequest{Prompt: "  "})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, []string{"prompt"}, verr.Missing)
}

func TestImprove(t *testing.T) {
	gen := &fakeGenerator{replies: []string{
		`{"improvedStory": "I rebuilt the pipeline. Because it failed nightly. Therefore releases are boring now.", "rationale": "Tightened the causal chain."}`,
	}}
	g := NewGenerator(zap.NewNop(), gen)

	res, err := g.Improve(context.Background(), ImproveRequest{
		Story:    "I did some work on the pipeline and it got better.",
		Role:     "SRE",
		Industry: "E-commerce",
	})
	require.NoError(t, err)
	require.Contains(t, res.ImprovedStory, "Therefore")
	require.NotEmpty(t, res.Rationale)
}

func TestImproveRawTextFallback(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"  A rewritten story, in plain prose.  "}}
	g := NewGenerator(zap.NewNop(), gen)

	res, err := g.Improve(context.Background(), ImproveRequest{
		Story:    "original",
		Role:     "SRE",
		Industry: "E-commerce",
	})
	require.NoError(t, err)
	require.Equal(t, "A rewritten story, in plain prose.", res.ImprovedStory)
	require.Empty(t, res.Rationale)
}
