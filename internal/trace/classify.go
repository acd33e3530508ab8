package trace

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dissectlabs/dissect/internal/graph"
)

// classifyRule maps a lowercase substring of a span name (or an exact
// attribute key) to a node kind. Rules are evaluated in order; the first
// match wins.
type classifyRule struct {
	Match string
	Kind  graph.Kind
}

// defaultRules covers the span naming and attribute conventions of the
// supported frameworks, most specific first.
var defaultRules = []classifyRule{
	{"langchain.agent", graph.KindAgent},
	{"langchain.tool", graph.KindTool},
	{"langchain.llm", graph.KindLLMCall},
	{"crewai.agent", graph.KindAgent},
	{"crewai.task", graph.KindAgent},
	{"crewai.tool", graph.KindTool},
	{"autogen.agent", graph.KindAgent},
	{"autogen.function", graph.KindTool},
	{"openai.chat", graph.KindLLMCall},
	{"anthropic.messages", graph.KindLLMCall},
	{"tool", graph.KindTool},
	{"llm", graph.KindLLMCall},
	{"agent", graph.KindAgent},
	{"user", graph.KindUserInput},
	{"workflow", graph.KindSystem},
	{"system", graph.KindSystem},
}

// Classifier resolves node kinds from span names and attribute keys.
// The zero rule set is the built-in table; custom rules loaded from a
// TOML file take precedence.
type Classifier struct {
	rules []classifyRule
}

// NewClassifier returns a classifier with the built-in rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules}
}

// rulesFile is the on-disk TOML shape:
//
//	[[rule]]
//	match = "retriever"
//	kind = "tool"
type rulesFile struct {
	Rules []struct {
		Match string `toml:"match"`
		Kind  string `toml:"kind"`
	} `toml:"rule"`
}

// LoadRules reads a TOML rules file and prepends its rules to the
// built-in table, so user rules win over defaults.
func (c *Classifier) LoadRules(path string) error {
	var file rulesFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fmt.Errorf("failed to parse rules file: %w", err)
	}
	custom := make([]classifyRule, 0, len(file.Rules))
	for _, r := range file.Rules {
		if r.Match == "" {
			return fmt.Errorf("rule with empty match in %s", path)
		}
		kind := graph.ParseKind(r.Kind)
		if kind == graph.KindUnknown && r.Kind != string(graph.KindUnknown) {
			return fmt.Errorf("rule %q has unknown kind %q", r.Match, r.Kind)
		}
		custom = append(custom, classifyRule{Match: strings.ToLower(r.Match), Kind: kind})
	}
	c.rules = append(custom, c.rules...)
	return nil
}

// Classify resolves a node kind from a span name and its attributes.
// A rule matches when its pattern appears in the lowercase name or
// equals an attribute key. Unresolved spans are KindUnknown, never an
// error.
func (c *Classifier) Classify(name string, attributes map[string]any) graph.Kind {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if strings.Contains(lower, r.Match) {
			return r.Kind
		}
		if attributes != nil {
			if _, ok := attributes[r.Match]; ok {
				return r.Kind
			}
		}
	}
	return graph.KindUnknown
}
