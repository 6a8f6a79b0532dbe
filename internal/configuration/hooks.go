package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// FloatListHookFunc returns a mapstructure decode hook that parses a comma separated
// string (e.g. from an environment variable or flag: "0.5, 1, 2") into a []float64.
func FloatListHookFunc() mapstructure.DecodeHookFuncType {
	floatSliceType := reflect.TypeOf([]float64{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != floatSliceType || f.Kind() != reflect.String {
			return data, nil
		}
		return ParseFloatList(data.(string))
	}
}

// ParseFloatList parses a comma separated list of floats.
func ParseFloatList(text string) ([]float64, error) {
	result := []float64{}
	if len(strings.TrimSpace(text)) == 0 {
		return result, nil
	}
	for _, part := range strings.Split(text, ",") {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid list value %q: %w", part, err)
		}
		result = append(result, value)
	}
	return result, nil
}
