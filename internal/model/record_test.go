package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeString(t *testing.T) {
	assert.Equal(t, "scope1", Scope1.String())
	assert.Equal(t, "scope3", Scope3.String())
	assert.Equal(t, "unknown(7)", Scope(7).String())
}

func TestScopeValid(t *testing.T) {
	assert.True(t, Scope1.Valid())
	assert.True(t, Scope3.Valid())
	assert.False(t, Scope(0).Valid())
	assert.False(t, Scope(4).Valid())
}

func TestScopeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Scope
	}{
		{"1", Scope1},
		{"3", Scope3},
		{`"scope2"`, Scope2},
		{`"2"`, Scope2},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var s Scope
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestScopeUnmarshalJSONInvalid(t *testing.T) {
	var s Scope
	assert.Error(t, json.Unmarshal([]byte("7"), &s))
	assert.Error(t, json.Unmarshal([]byte(`"scope9"`), &s))
	assert.Error(t, json.Unmarshal([]byte("true"), &s))
}

func TestScopeMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Scope2)
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))
}
