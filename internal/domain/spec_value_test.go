package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecValueUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, v SpecValue)
	}{
		{
			name:  "string",
			input: `"64GB"`,
			check: func(t *testing.T, v SpecValue) {
				s, ok := v.String()
				require.True(t, ok)
				assert.Equal(t, "64GB", s)
			},
		},
		{
			name:  "number",
			input: `7.5`,
			check: func(t *testing.T, v SpecValue) {
				n, ok := v.Number()
				require.True(t, ok)
				assert.Equal(t, 7.5, n)
			},
		},
		{
			name:  "bool",
			input: `true`,
			check: func(t *testing.T, v SpecValue) {
				b, ok := v.Bool()
				require.True(t, ok)
				assert.True(t, b)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v SpecValue
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			tt.check(t, v)
		})
	}
}

func TestSpecValueRejectsNonScalars(t *testing.T) {
	for _, input := range []string{`null`, `{}`, `[1,2]`, `{"a":1}`} {
		var v SpecValue
		assert.Error(t, json.Unmarshal([]byte(input), &v), "input %s", input)
	}
}

func TestSpecValueMarshal(t *testing.T) {
	data, err := json.Marshal(map[string]SpecValue{
		"storage":  StringSpec("1TB"),
		"ports":    NumberSpec(4),
		"wireless": BoolSpec(false),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"storage":"1TB","ports":4,"wireless":false}`, string(data))
}

func TestSpecValueKindMismatch(t *testing.T) {
	v := NumberSpec(3)
	_, ok := v.String()
	assert.False(t, ok)
	_, ok = v.Bool()
	assert.False(t, ok)
	n, ok := v.Number()
	assert.True(t, ok)
	assert.Equal(t, float64(3), n)
}
