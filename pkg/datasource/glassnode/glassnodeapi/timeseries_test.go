package glassnodeapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTimeSeries(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		series, err := DecodeTimeSeries([]byte(`[]`))
		require.NoError(t, err)
		assert.Empty(t, series)

		_, ok := series.Last()
		assert.False(t, ok)
	})

	t.Run("issues", func(t *testing.T) {
		_, err := ValidateTimeSeries(mustParse(t, `[
			{"v": 1},
			{"t": "yesterday", "v": 1},
			{"t": 1614556800, "v": "1"},
			{"t": 1614556800, "o": {"a": true}},
			1
		]`))
		validationErr := requireValidationError(t, err)
		assert.Equal(t, SchemaTimeSeries, validationErr.Schema)
		assert.Equal(t, []string{"[0].t", "[1].t", "[2].v", "[3].o.a", "[4]"}, validationErr.Paths())
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := ValidateTimeSeries(mustParse(t, `{"t": 1, "v": 1}`))
		requireValidationError(t, err)
	})
}
