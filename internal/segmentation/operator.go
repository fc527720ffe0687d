package segmentation

import "strings"

// OperatorRule maps operator code prefixes to an operator name.
type OperatorRule struct {
	Prefixes []string `mapstructure:"prefixes"`
	Name     string   `mapstructure:"name"`
}

// OperatorTable resolves operator names with first-match-wins over ordered rules.
type OperatorTable struct {
	rules    []OperatorRule
	fallback string
}

func NewOperatorTable(rules []OperatorRule, fallback string) *OperatorTable {
	copied := make([]OperatorRule, len(rules))
	copy(copied, rules)
	return &OperatorTable{rules: copied, fallback: fallback}
}

func (t *OperatorTable) Lookup(operatorCode string) string {
	for _, rule := range t.rules {
		for _, prefix := range rule.Prefixes {
			if prefix != "" && strings.HasPrefix(operatorCode, prefix) {
				return rule.Name
			}
		}
	}
	return t.fallback
}
