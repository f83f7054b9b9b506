package gemini

import (
	"fmt"
	"strings"
)

// Story carries the narrative fields a prompt is built from.
type Story struct {
	Role        string `json:"role"`
	Industry    string `json:"industry"`
	Achievement string `json:"achievement"`
	Because     string `json:"because"`
	Therefore   string `json:"therefore"`
}

// SystemPrompt is prepended to every scoring request.
const SystemPrompt = `You are an expert interview coach and career advisor specializing in evaluating ABT (Accomplishment-Because-Therefore) stories for job interviews.

Your role is to analyze candidate stories using the ABT framework and provide detailed scoring and feedback.

ABT Framework:
- **Accomplishment**: What the candidate achieved or did
- **Because**: Why it was challenging, important, or noteworthy
- **Therefore**: What measurable impact, result, or outcome occurred

Scoring Criteria (0-5 scale for each):

1. **Clarity (0-5)**: How clear, understandable, and well-articulated is the story?
2. **Relevance (0-5)**: How relevant is this story to typical job interview contexts?
3. **Impact (0-5)**: How significant and meaningful was the result or outcome?
4. **Metrics (0-5)**: How well quantified and specific are the results?
5. **Story Arc (0-5)**: How well does the story follow the ABT structure?
6. **Concision (0-5)**: How focused and concise is the narrative?

Provide constructive, actionable feedback that helps candidates improve their storytelling for interviews.

Always respond with valid JSON.`

const scoringPromptTmpl = `Please analyze and score this ABT interview story:

**Context:**
- Role: %s
- Industry: %s

**ABT Story:**

**Accomplishment:** %s

**Because:** %s

**Therefore:** %s

---

Please provide a comprehensive analysis and scoring based on the 6 criteria (clarity, relevance, impact, metrics, storyArc, concision).

For each score:
- 0-1: Poor/Needs major improvement
- 2: Below average/Needs improvement
- 3: Average/Acceptable
- 4: Good/Above average
- 5: Excellent/Outstanding

Provide specific, actionable feedback in the strengths, improvements, and suggestions arrays.

Respond with JSON in this exact format:

` + "```json" + `
{
  "scores": {
    "clarity": 0,
    "relevance": 0,
    "impact": 0,
    "metrics": 0,
    "storyArc": 0,
    "concision": 0
  },
  "totalScore": 0,
  "averageScore": 0.0,
  "feedback": {
    "strengths": ["List specific strengths here"],
    "improvements": ["List areas needing improvement"],
    "suggestions": ["List actionable suggestions"]
  },
  "overallAssessment": "Brief overall assessment of the story's effectiveness for interviews"
}
` + "```" + `

Ensure the totalScore equals the sum of all individual scores, and averageScore is totalScore divided by 6.`

// ScoringPrompt builds the full scoring prompt, system preamble included.
func ScoringPrompt(s Story) string {
	user := fmt.Sprintf(scoringPromptTmpl, s.Role, s.Industry, s.Achievement, s.Because, s.Therefore)
	return SystemPrompt + "\n\n" + user
}

const improvementPromptTmpl = `Based on the scoring analysis, the weakest areas for this ABT story are: %s.

Original story context:
- Role: %s
- Industry: %s
- Achievement: %s
- Because: %s
- Therefore: %s

Please provide 3-5 specific, actionable recommendations to improve this story, focusing especially on the weakest scoring areas. Make the suggestions concrete and implementable.

Format as a simple array of strings:
["Specific suggestion 1", "Specific suggestion 2", "etc."]`

// ImprovementPrompt asks for targeted suggestions for the weakest dimensions.
func ImprovementPrompt(s Story, weakAreas []string) string {
	areas := strings.Join(weakAreas, ", ")
	if areas == "" {
		areas = "overall story structure"
	}
	return fmt.Sprintf(improvementPromptTmpl, areas, s.Role, s.Industry, s.Achievement, s.Because, s.Therefore)
}

// ImprovePrompt asks for a rewritten story plus a rationale, optionally
// taking earlier feedback into account.
func ImprovePrompt(story, role, industry, feedback string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert interview coach helping improve a candidate's story for a %s position in the %s industry.\n\n", role, industry)
	fmt.Fprintf(&sb, "Original story:\n%q\n\n", story)
	if feedback != "" {
		fmt.Fprintf(&sb, "Previous feedback received:\n%q\n\n", feedback)
	}
	sb.WriteString(`Please provide an improved version of this story that:
1. Is more compelling and specific
2. Better demonstrates relevant skills and achievements
3. Uses the ABT (Accomplishment-Because-Therefore) framework more effectively
4. Is concise but impactful
`)
	if feedback != "" {
		sb.WriteString("5. Addresses the previous feedback provided\n")
	} else {
		sb.WriteString("5. Shows clear measurable results\n")
	}
	sb.WriteString(`
Provide your response in this exact JSON format:
{
  "improvedStory": "Your improved version here",
  "rationale": "Explanation of what you changed and why"
}`)
	return sb.String()
}

// Generation prompt types accepted by GenerationPrompt.
const (
	TypeInterviewQuestions = "interview-questions"
	TypeSampleAnswers      = "sample-answers"
	TypeFeedback           = "feedback"
	TypePracticeScenarios  = "practice-scenarios"
	TypeGeneral            = "general"
)

// StructuredType reports whether responses for the given generation type are
// expected to be JSON rather than free text.
func StructuredType(typ string) bool {
	switch typ {
	case TypeInterviewQuestions, TypeSampleAnswers, TypeFeedback, TypePracticeScenarios:
		return true
	}
	return false
}

// GenerationPrompt builds the prompt for a content generation request.
func GenerationPrompt(prompt, typ, context string) string {
	switch typ {
	case TypeInterviewQuestions:
		if context == "" {
			context = "general interview"
		}
		return fmt.Sprintf("Generate interview questions based on the following context: %s\n\nUser request: %s\n\nProvide 5-10 relevant interview questions that would be appropriate for this context. Format as a JSON object with a \"questions\" array of strings.", context, prompt)
	case TypeSampleAnswers:
		if context == "" {
			context = "General professional context"
		}
		return fmt.Sprintf("Generate sample answers for interview questions using the ABT (Accomplishment-Because-Therefore) framework.\n\nQuestion: %s\n\nContext: %s\n\nProvide 2-3 different sample answers following the ABT structure:\n- Accomplishment: What you achieved\n- Because: Why it was challenging or important\n- Therefore: What the measurable impact or result was\n\nFormat as JSON with this structure:\n{\n  \"answers\": [\n    {\n      \"accomplishment\": \"...\",\n      \"because\": \"...\",\n      \"therefore\": \"...\",\n      \"fullAnswer\": \"...\"\n    }\n  ]\n}", prompt, context)
	case TypeFeedback:
		if context == "" {
			context = "General interview context"
		}
		return fmt.Sprintf("Provide constructive feedback and improvement suggestions for the following interview response:\n\n%q\n\nContext: %s\n\nAnalyze the response and provide:\n1. What's working well\n2. Areas for improvement\n3. Specific suggestions for enhancement\n4. Alternative phrasing suggestions\n\nFormat as JSON with this structure:\n{\n  \"strengths\": [\"...\"],\n  \"improvements\": [\"...\"],\n  \"suggestions\": [\"...\"],\n  \"alternatives\": [\"...\"]\n}", prompt, context)
	case TypePracticeScenarios:
		if context == "" {
			context = "General professional environment"
		}
		return fmt.Sprintf("Generate realistic practice scenarios for interview preparation based on: %s\n\nContext: %s\n\nProvide 3-5 detailed scenarios that would be relevant for interview practice, including:\n- Situation description\n- Key challenges\n- Expected outcomes\n- Skills being tested\n\nFormat as a JSON object with a \"scenarios\" array of scenario objects.", prompt, context)
	default:
		prefix := ""
		if context != "" {
			prefix = fmt.Sprintf("Context: %s\n\n", context)
		}
		return fmt.Sprintf("%s%s\n\nPlease provide a helpful and detailed response appropriate for interview preparation and professional development.", prefix, prompt)
	}
}
