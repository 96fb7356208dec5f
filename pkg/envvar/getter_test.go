package envvar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("GLASSNODE_API_URL", "http://localhost:8080")
	t.Setenv("GLASSNODE_HTTP_TIMEOUT", "3s")
	t.Setenv("GLASSNODE_DUMP_LIMIT", "ten")
	t.Setenv("GLASSNODE_DEBUG", "true")
	t.Setenv("GLASSNODE_API_KEY", "")

	s, ok := String("API_URL", "https://api.glassnode.com")
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8080", s)

	s, ok = String("API_KEY", "fallback")
	assert.False(t, ok, "empty values are treated as unset")
	assert.Equal(t, "fallback", s)

	du, ok := Duration("HTTP_TIMEOUT", time.Second)
	assert.True(t, ok)
	assert.Equal(t, 3*time.Second, du)

	n, ok := Int("DUMP_LIMIT", 5)
	assert.False(t, ok)
	assert.Equal(t, 5, n)

	b, ok := Bool("DEBUG")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = Bool("UNDEFINED")
	assert.False(t, ok)
}
