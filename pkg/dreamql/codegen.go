package dreamql

import (
	"fmt"
	"strings"
)

// generateBigQuery renders q as a single-line BigQuery statement.
// Identifiers are upper-cased; keywords are lower case.
func generateBigQuery(q *Query) (string, error) {
	if q == nil || q.Source == nil {
		return "", &Error{Message: ErrExpectedTable}
	}

	var (
		columns []string
		wheres  []*Condition
		sort    *SortStage
		limit   *LimitStage
	)
	for _, stage := range q.Stages {
		switch s := stage.(type) {
		case *WhereStage:
			wheres = append(wheres, s.Condition)
		case *SelectStage:
			columns = s.Columns
		case *SortStage:
			sort = s
		case *LimitStage:
			limit = s
		default:
			return "", fmt.Errorf("unsupported stage %T", stage)
		}
	}

	var b strings.Builder
	b.WriteString("select ")
	if len(columns) == 0 {
		b.WriteString("*")
	} else {
		for i, col := range columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ident(col))
		}
	}

	b.WriteString(" from ")
	for i, part := range q.Source.Parts {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(ident(part))
	}

	if len(wheres) > 0 {
		b.WriteString(" where ")
		for i, cond := range wheres {
			if i > 0 {
				b.WriteString(" and ")
			}
			wrap := len(wheres) > 1 && cond.HasOr()
			if wrap {
				b.WriteByte('(')
			}
			writeCondition(&b, cond)
			if wrap {
				b.WriteByte(')')
			}
		}
	}

	if sort != nil {
		b.WriteString(" order by ")
		for i, key := range sort.Keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(ident(key.Column))
			if key.Descending {
				b.WriteString(" desc")
			}
		}
	}

	if limit != nil {
		b.WriteString(" limit ")
		b.WriteString(limit.Count)
	}

	return b.String(), nil
}

func writeCondition(b *strings.Builder, c *Condition) {
	for i, term := range c.Terms {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(c.Connectives[i-1])
			b.WriteByte(' ')
		}
		writeComparison(b, term)
	}
}

func writeComparison(b *strings.Builder, cmp *Comparison) {
	b.WriteString(operand(cmp.Left))
	if cmp.Right == nil {
		return
	}

	// SQL null never compares equal; rewrite to IS [NOT] NULL.
	if cmp.Right.Kind == OperandNull {
		switch cmp.Operator {
		case "=":
			b.WriteString(" is null")
			return
		case "!=":
			b.WriteString(" is not null")
			return
		}
	}

	b.WriteByte(' ')
	b.WriteString(cmp.Operator)
	b.WriteByte(' ')
	b.WriteString(operand(cmp.Right))
}

func operand(op *Operand) string {
	if op.Kind == OperandColumn {
		return ident(op.Value)
	}
	return op.Value
}

func ident(name string) string {
	return strings.ToUpper(name)
}
