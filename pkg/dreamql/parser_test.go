package dreamql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Source(t *testing.T) {
	q, err := Parse("project.dataset.orders")
	require.NoError(t, err)
	require.NotNil(t, q.Source)
	assert.Equal(t, []string{"project", "dataset", "orders"}, q.Source.Parts)
	assert.Empty(t, q.Stages)
}

func TestParse_Stages(t *testing.T) {
	q, err := Parse("orders | where amount > 10 or status = 'open' | select id, amount | sort amount desc, id | limit 5")
	require.NoError(t, err)
	require.Len(t, q.Stages, 4)

	where, ok := q.Stages[0].(*WhereStage)
	require.True(t, ok)
	require.Len(t, where.Condition.Terms, 2)
	assert.Equal(t, []string{"or"}, where.Condition.Connectives)
	assert.Equal(t, &Comparison{
		Left:     &Operand{Kind: OperandColumn, Value: "amount"},
		Operator: ">",
		Right:    &Operand{Kind: OperandNumber, Value: "10"},
	}, where.Condition.Terms[0])
	assert.Equal(t, OperandString, where.Condition.Terms[1].Right.Kind)

	sel, ok := q.Stages[1].(*SelectStage)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "amount"}, sel.Columns)

	sortStage, ok := q.Stages[2].(*SortStage)
	require.True(t, ok)
	assert.Equal(t, []SortKey{{Column: "amount", Descending: true}, {Column: "id"}}, sortStage.Keys)

	limit, ok := q.Stages[3].(*LimitStage)
	require.True(t, ok)
	assert.Equal(t, "5", limit.Count)
}

func TestParse_BareOperandCondition(t *testing.T) {
	q, err := Parse("users | where active")
	require.NoError(t, err)

	where := q.Stages[0].(*WhereStage)
	require.Len(t, where.Condition.Terms, 1)
	assert.Empty(t, where.Condition.Terms[0].Operator)
	assert.Nil(t, where.Condition.Terms[0].Right)
}

func TestParse_NotEqualSpellings(t *testing.T) {
	q, err := Parse("t | where a <> 1")
	require.NoError(t, err)
	assert.Equal(t, "!=", q.Stages[0].(*WhereStage).Condition.Terms[0].Operator)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: "line 1, column 1: expected table name",
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: "line 1, column 4: expected table name",
		},
		{
			name:    "number as table",
			input:   "1",
			wantErr: "line 1, column 1: unexpected number 1, expected table name",
		},
		{
			name:    "dangling pipe",
			input:   "orders |",
			wantErr: "line 1, column 9: unexpected end of input, expected stage",
		},
		{
			name:    "unknown stage",
			input:   "orders | frobnicate",
			wantErr: `line 1, column 10: unknown stage "frobnicate", expected where, select, sort or limit`,
		},
		{
			name:    "duplicate limit",
			input:   "orders | limit 1 | limit 2",
			wantErr: "line 1, column 20: limit stage already defined",
		},
		{
			name:    "fractional limit",
			input:   "orders | limit 1.5",
			wantErr: "line 1, column 16: unexpected number 1.5, expected row count",
		},
		{
			name:    "trailing garbage",
			input:   "orders extra",
			wantErr: `line 1, column 8: unexpected ident extra, expected "|" or end of input`,
		},
		{
			name:    "missing comparison operand",
			input:   "orders | where a =",
			wantErr: "line 1, column 19: unexpected end of input, expected column or value",
		},
		{
			name:    "unterminated string",
			input:   "orders | where a = 'x",
			wantErr: "line 1, column 20: unterminated string literal",
		},
		{
			name:    "keyword as column",
			input:   "orders | select where",
			wantErr: "line 1, column 17: unexpected keyword where, expected column name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, q)
			assert.Equal(t, tt.wantErr, err.Error())

			var perr *Error
			assert.True(t, errors.As(err, &perr), "errors are *dreamql.Error")
		})
	}
}

func TestParse_MultipleWhereStagesAllowed(t *testing.T) {
	q, err := Parse("t | where a = 1 | where b = 2")
	require.NoError(t, err)
	assert.Len(t, q.Stages, 2)
}
