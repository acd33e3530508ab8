package trace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dissectlabs/dissect/internal/graph"
)

func TestClassifyDefaults(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name  string
		attrs map[string]any
		want  graph.Kind
	}{
		{"langchain.agent.plan", nil, graph.KindAgent},
		{"LangChain.Tool.search", nil, graph.KindTool},
		{"openai.chat.completions", nil, graph.KindLLMCall},
		{"anthropic.messages.create", nil, graph.KindLLMCall},
		{"web_search_tool", nil, graph.KindTool},
		{"user_proxy", nil, graph.KindUserInput},
		{"workflow.step.route", nil, graph.KindSystem},
		{"mystery", nil, graph.KindUnknown},
		{"mystery", map[string]any{"llm": "gpt-4"}, graph.KindLLMCall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.name, tt.attrs); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifySpecificBeforeGeneric(t *testing.T) {
	c := NewClassifier()
	// "crewai.task" contains no generic hit before the specific rule fires.
	if got := c.Classify("crewai.task.research", nil); got != graph.KindAgent {
		t.Errorf("Classify(crewai.task.research) = %q, want %q", got, graph.KindAgent)
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.toml")
	content := `
[[rule]]
match = "mystery"
kind = "tool"

[[rule]]
match = "llm"
kind = "system"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewClassifier()
	if err := c.LoadRules(path); err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	// Custom rule resolves a previously unknown name.
	if got := c.Classify("mystery_step", nil); got != graph.KindTool {
		t.Errorf("Classify(mystery_step) = %q, want %q", got, graph.KindTool)
	}
	// Custom rules win over the built-in table.
	if got := c.Classify("llm.call", nil); got != graph.KindSystem {
		t.Errorf("Classify(llm.call) = %q, want %q", got, graph.KindSystem)
	}
}

func TestLoadRulesValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty match",
			content: `
[[rule]]
match = ""
kind = "tool"
`,
		},
		{
			name: "unknown kind",
			content: `
[[rule]]
match = "x"
kind = "gizmo"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rules.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			c := NewClassifier()
			if err := c.LoadRules(path); err == nil {
				t.Error("LoadRules() error = nil, want validation error")
			}
		})
	}
}
