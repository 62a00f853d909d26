package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputMode(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputMode
		wantErr bool
	}{
		{input: "sql", want: ModeSQL},
		{input: "SQL", want: ModeSQL},
		{input: "tokens", want: ModeTokens},
		{input: " Ast ", want: ModeAST},
		{input: "grammar", want: ModeGrammar},
		{input: "json", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputMode(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "sql", ModeSQL.String())
	assert.Equal(t, "grammar", ModeGrammar.String())
	assert.Equal(t, "OutputMode(7)", OutputMode(7).String())
}

func TestOutputMode_Cycle(t *testing.T) {
	assert.Equal(t, ModeTokens, ModeSQL.Next())
	assert.Equal(t, ModeSQL, ModeGrammar.Next())
	assert.Equal(t, ModeGrammar, ModeSQL.Prev())
	assert.Equal(t, ModeAST, ModeGrammar.Prev())
}

func TestOutputMode_Text(t *testing.T) {
	b, err := ModeAST.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ast", string(b))

	var m OutputMode
	require.NoError(t, m.UnmarshalText([]byte("Tokens")))
	assert.Equal(t, ModeTokens, m)

	assert.Error(t, m.UnmarshalText([]byte("nope")))
	_, err = OutputMode(9).MarshalText()
	assert.Error(t, err)
}
