package dreamql

import "github.com/leapstack-labs/dreamql/pkg/token"

// Query is the root of a parsed DreamQL program:
// a source table followed by pipeline stages.
type Query struct {
	Source *TableRef `yaml:"source"`
	Stages []Stage   `yaml:"stages,omitempty"`
}

// TableRef names a (possibly qualified) table.
type TableRef struct {
	Parts []string       `yaml:"parts,flow"`
	Pos   token.Position `yaml:"-"`
}

// Stage is one pipeline step.
type Stage interface {
	stageNode()
	// Kind returns the stage keyword.
	Kind() string
}

// WhereStage filters rows.
type WhereStage struct {
	Condition *Condition `yaml:"condition"`
}

// SelectStage projects columns.
type SelectStage struct {
	Columns []string `yaml:"columns,flow"`
}

// SortStage orders rows.
type SortStage struct {
	Keys []SortKey `yaml:"keys"`
}

// LimitStage caps the number of rows.
type LimitStage struct {
	Count string `yaml:"count"`
}

func (*WhereStage) stageNode()  {}
func (*SelectStage) stageNode() {}
func (*SortStage) stageNode()   {}
func (*LimitStage) stageNode()  {}

// Kind implements Stage.
func (*WhereStage) Kind() string { return "where" }

// Kind implements Stage.
func (*SelectStage) Kind() string { return "select" }

// Kind implements Stage.
func (*SortStage) Kind() string { return "sort" }

// Kind implements Stage.
func (*LimitStage) Kind() string { return "limit" }

// SortKey is a column with a direction.
type SortKey struct {
	Column     string `yaml:"column"`
	Descending bool   `yaml:"descending,omitempty"`
}

// Condition is a chain of comparisons joined by AND/OR, left to right.
// Connectives[i] joins Terms[i] and Terms[i+1].
type Condition struct {
	Terms       []*Comparison `yaml:"terms"`
	Connectives []string      `yaml:"connectives,flow,omitempty"`
}

// HasOr reports whether any connective is OR.
func (c *Condition) HasOr() bool {
	for _, conn := range c.Connectives {
		if conn == "or" {
			return true
		}
	}
	return false
}

// Comparison is a single operand or a binary comparison.
type Comparison struct {
	Left     *Operand `yaml:"left"`
	Operator string   `yaml:"operator,omitempty"`
	Right    *Operand `yaml:"right,omitempty"`
}

// OperandKind classifies an operand.
type OperandKind string

// Operand kinds.
const (
	OperandColumn  OperandKind = "column"
	OperandNumber  OperandKind = "number"
	OperandString  OperandKind = "string"
	OperandBoolean OperandKind = "boolean"
	OperandNull    OperandKind = "null"
)

// Operand is a leaf value in a comparison.
type Operand struct {
	Kind  OperandKind `yaml:"kind"`
	Value string      `yaml:"value"`
}

// MarshalYAML renders the stage keyed by its keyword.
func (s *WhereStage) MarshalYAML() (any, error) { return map[string]any{"where": s.Condition}, nil }

// MarshalYAML renders the stage keyed by its keyword.
func (s *SelectStage) MarshalYAML() (any, error) { return map[string]any{"select": s.Columns}, nil }

// MarshalYAML renders the stage keyed by its keyword.
func (s *SortStage) MarshalYAML() (any, error) { return map[string]any{"sort": s.Keys}, nil }

// MarshalYAML renders the stage keyed by its keyword.
func (s *LimitStage) MarshalYAML() (any, error) { return map[string]any{"limit": s.Count}, nil }
