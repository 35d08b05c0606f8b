package config

// Model is the unified, format-agnostic representation of the configuration.
type Model struct {
	Styles *Styles
}

// StyleRule binds a category (a job type or a status) to a Mermaid style
// descriptor such as "fill:#4CAF50,color:#fff".
type StyleRule struct {
	Key   string
	Style string
}

// Styles holds the lookup tables of the renderer. Order is preserved so the
// emitted class definitions are stable.
type Styles struct {
	// Types colours nodes by job type.
	Types []StyleRule
	// Statuses overrides the border of nodes with a distinguished status.
	Statuses []StyleRule
}

const nodeBase = "color:#fff,font-size:48px,stroke:#333,stroke-width:4px"

// DefaultStyles returns the built-in palette.
func DefaultStyles() *Styles {
	return &Styles{
		Types: []StyleRule{
			{Key: "Import", Style: "fill:#4CAF50," + nodeBase},
			{Key: "Extract", Style: "fill:#8BC34A," + nodeBase},
			{Key: "Refine3D", Style: "fill:#2196F3," + nodeBase},
			{Key: "Class3D", Style: "fill:#FF9800," + nodeBase},
			{Key: "Select", Style: "fill:#9C27B0," + nodeBase},
			{Key: "MaskCreate", Style: "fill:#607D8B," + nodeBase},
			{Key: "PostProcess", Style: "fill:#00BCD4," + nodeBase},
			{Key: "CtfRefine", Style: "fill:#3F51B5," + nodeBase},
			{Key: "MultiBody", Style: "fill:#E91E63," + nodeBase},
			{Key: "Subtract", Style: "fill:#795548," + nodeBase},
			{Key: "JoinStar", Style: "fill:#009688," + nodeBase},
		},
		Statuses: []StyleRule{
			{Key: "Failed", Style: "stroke:#f44336,stroke-width:6px"},
			{Key: "Running", Style: "stroke:#FF9800,stroke-width:6px,stroke-dasharray:5"},
		},
	}
}

// DefaultModel returns a model holding only built-in values.
func DefaultModel() *Model {
	return &Model{Styles: DefaultStyles()}
}

// TypeStyle returns the style of a job type. Unknown types have none.
func (s *Styles) TypeStyle(jobType string) (string, bool) {
	return lookup(s.Types, jobType)
}

// StatusStyle returns the override of a status. Unknown statuses have none.
func (s *Styles) StatusStyle(status string) (string, bool) {
	return lookup(s.Statuses, status)
}

// SetType replaces the style of an existing job type in place or appends a
// new one.
func (s *Styles) SetType(jobType, style string) {
	s.Types = set(s.Types, jobType, style)
}

// SetStatus replaces the override of an existing status in place or appends
// a new one.
func (s *Styles) SetStatus(status, style string) {
	s.Statuses = set(s.Statuses, status, style)
}

func lookup(rules []StyleRule, key string) (string, bool) {
	for _, r := range rules {
		if r.Key == key {
			return r.Style, true
		}
	}
	return "", false
}

func set(rules []StyleRule, key, style string) []StyleRule {
	for i := range rules {
		if rules[i].Key == key {
			rules[i].Style = style
			return rules
		}
	}
	return append(rules, StyleRule{Key: key, Style: style})
}
