package gemini

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "fenced json block",
			text:   "Here you go:\n```json\n{\"scores\": {\"clarity\": 4}}\n```\nGood luck!",
			want:   `{"scores": {"clarity": 4}}`,
			wantOK: true,
		},
		{
			name:   "fenced block without language tag",
			text:   "```\n{\"a\": 1}\n```",
			want:   `{"a": 1}`,
			wantOK: true,
		},
		{
			name:   "bare object",
			text:   `{"improvedStory": "Better version"}`,
			want:   `{"improvedStory": "Better version"}`,
			wantOK: true,
		},
		{
			name:   "object embedded in prose",
			text:   `Sure! The result is {"total": 23, "nested": {"x": 1}} as requested.`,
			want:   `{"total": 23, "nested": {"x": 1}}`,
			wantOK: true,
		},
		{
			name:   "braces inside string literals",
			text:   `{"assessment": "use {curly} braces wisely", "score": 3}`,
			want:   `{"assessment": "use {curly} braces wisely", "score": 3}`,
			wantOK: true,
		},
		{
			name:   "escaped quote inside string",
			text:   `{"quote": "she said \"hi\" {", "n": 1}`,
			want:   `{"quote": "she said \"hi\" {", "n": 1}`,
			wantOK: true,
		},
		{
			name:   "prose only",
			text:   "I cannot produce a score for this story.",
			wantOK: false,
		},
		{
			name:   "unbalanced braces",
			text:   `{"oops": `,
			wantOK: false,
		},
		{
			name:   "empty input",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
