package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyJSON(t *testing.T) {
	out, err := PrettyJSON(map[string]any{
		"b":     []int{1, 2},
		"a":     1,
		"empty": FloatPtr(math.NaN()),
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"a\": 1,\n\t\"b\": [\n\t\t1,\n\t\t2\n\t],\n\t\"empty\": null\n}", out)
}

func TestPrettyJSON_RawBytes(t *testing.T) {
	out, err := PrettyJSON([]byte(`{"a":{"b":true}}`))
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"a\": {\n\t\t\"b\": true\n\t}\n}", out)

	_, err = PrettyJSON([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestPrettyJSON_Unsupported(t *testing.T) {
	_, err := PrettyJSON(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
