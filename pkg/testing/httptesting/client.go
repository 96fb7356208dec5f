package httptesting

import (
	"encoding/json"
	"net/http"
	"os"
)

// EchoSave replies every request with the same canned response.
type EchoSave struct {
	// saveTo points to a variable of the caller that receives the latest request,
	// so that tests can inspect the url and headers that were sent.
	saveTo **http.Request

	statusCode int
	content    string
	err        error
}

func (st *EchoSave) RoundTrip(req *http.Request) (*http.Response, error) {
	if st.saveTo != nil {
		*st.saveTo = req
	}

	if st.err != nil {
		return nil, st.err
	}

	code := st.statusCode
	if code == 0 {
		code = http.StatusOK
	}

	resp := BuildResponseString(code, st.content)
	SetHeader(resp, "Content-Type", "application/json")
	resp.Request = req
	return resp, nil
}

func HttpClientFromFile(filename string) *http.Client {
	rawBytes, err := os.ReadFile(filename)
	transport := EchoSave{err: err, content: string(rawBytes)}
	return &http.Client{Transport: &transport}
}

func HttpClientWithContent(content string) *http.Client {
	transport := EchoSave{content: content}
	return &http.Client{Transport: &transport}
}

// HttpClientWithStatus replies every request with the given status code and body.
func HttpClientWithStatus(code int, content string) *http.Client {
	transport := EchoSave{statusCode: code, content: content}
	return &http.Client{Transport: &transport}
}

// HttpClientWithError fails every round trip with err, like a refused connection.
func HttpClientWithError(err error) *http.Client {
	transport := EchoSave{err: err}
	return &http.Client{Transport: &transport}
}

func HttpClientWithJson(jsonData interface{}) *http.Client {
	jsonBytes, err := json.Marshal(jsonData)
	transport := EchoSave{err: err, content: string(jsonBytes)}
	return &http.Client{Transport: &transport}
}

// HttpClientSaver stores the latest request in saved.
func HttpClientSaver(saved **http.Request, content string) *http.Client {
	transport := EchoSave{saveTo: saved, content: content}
	return &http.Client{Transport: &transport}
}

func HttpClientSaverWithJson(saved **http.Request, jsonData interface{}) *http.Client {
	jsonBytes, err := json.Marshal(jsonData)
	transport := EchoSave{saveTo: saved, err: err, content: string(jsonBytes)}
	return &http.Client{Transport: &transport}
}
