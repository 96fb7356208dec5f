package httptesting

import (
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterURL(t *testing.T) {
	assert.Equal(t,
		"https://api.glassnode.com/v1/metadata/metric?path=%2Fmarket%2Fprice_usd&a=BTC",
		FilterURL("https://api.glassnode.com/v1/metadata/metric?path=%2Fmarket%2Fprice_usd&api_key=secret&a=BTC"))
	assert.Equal(t,
		"https://api.glassnode.com/v1/metadata/metrics",
		FilterURL("https://api.glassnode.com/v1/metadata/metrics?api_key=secret"))
}

func TestRecorder(t *testing.T) {
	upstream := &MockTransport{}
	upstream.GET("/v1/metadata/metrics", func(req *http.Request) (*http.Response, error) {
		return BuildResponseString(http.StatusOK, `["/market/price_usd"]`), nil
	})

	recorder := NewRecorder(upstream)
	client := &http.Client{Transport: recorder}

	req, err := http.NewRequest(http.MethodGet, "https://api.glassnode.com/v1/metadata/metrics?api_key=secret", nil)
	require.NoError(t, err)
	req.Header.Set("X-Api-Key", "secret")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)

	// the body is still readable after recording
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `["/market/price_usd"]`, string(body))

	entries := recorder.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "https://api.glassnode.com/v1/metadata/metrics", entries[0].Request.URL)
	assert.Empty(t, entries[0].Request.Header.Get("X-Api-Key"))
	assert.Equal(t, "application/json", entries[0].Request.Header.Get("Accept"))
	assert.Equal(t, 1, upstream.Calls("/v1/metadata/metrics"))

	filename := filepath.Join(t.TempDir(), "recording.json")
	require.NoError(t, recorder.Save(filename))

	loaded := NewRecorder(nil)
	require.NoError(t, loaded.Load(filename))

	playback := &MockTransport{}
	require.NoError(t, playback.LoadFromRecorder(loaded))

	resp, err = (&http.Client{Transport: playback}).Get("https://api.glassnode.com/v1/metadata/metrics?api_key=other")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `["/market/price_usd"]`, string(body))
}

func TestMockTransport_Undefined(t *testing.T) {
	transport := &MockTransport{}
	_, err := (&http.Client{Transport: transport}).Get("https://api.glassnode.com/v1/metadata/assets")
	assert.Error(t, err)
	assert.Len(t, transport.Requests(), 1)
}
