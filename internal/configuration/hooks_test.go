package configuration

import (
	"reflect"
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloatList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []float64
	}{
		{
			name:     "Single value",
			input:    "2",
			expected: []float64{2},
		},
		{
			name:     "Multiple values with spaces",
			input:    "0.5, 1,  -2.25",
			expected: []float64{0.5, 1, -2.25},
		},
		{
			name:     "Empty string",
			input:    "  ",
			expected: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseFloatList(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseFloatList_Invalid(t *testing.T) {
	// WHEN
	_, err := ParseFloatList("1,abc")

	// THEN
	assert.ErrorContains(t, err, `invalid list value "abc"`)
}

func TestFloatListHookFunc(t *testing.T) {
	type TestConfig struct {
		Kp []float64 `mapstructure:"kp"`
	}

	tests := []struct {
		name     string
		inputMap map[string]interface{}
		expected []float64
	}{
		{
			name:     "Comma separated string",
			inputMap: map[string]interface{}{"kp": "1,2,3"},
			expected: []float64{1, 2, 3},
		},
		{
			name:     "Native list",
			inputMap: map[string]interface{}{"kp": []interface{}{0.5, 1.5}},
			expected: []float64{0.5, 1.5},
		},
		{
			name:     "Missing from config",
			inputMap: map[string]interface{}{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg TestConfig

			decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
				DecodeHook: FloatListHookFunc(),
				Result:     &cfg,
			})
			require.NoError(t, err)

			err = decoder.Decode(tt.inputMap)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, cfg.Kp)
		})
	}
}

func TestFloatListHookFunc_SkipsUnrelatedTypes(t *testing.T) {
	hook := FloatListHookFunc()

	f := reflect.TypeOf("string")
	tTarget := reflect.TypeOf(123)
	data := "some string"

	res, err := hook(f, tTarget, data)

	assert.NoError(t, err)
	assert.Equal(t, data, res)
}
