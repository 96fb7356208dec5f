package httptesting

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// BuildResponse builds a response with a "<code> <reason>" status line, the way net/http does.
func BuildResponse(code int, payload []byte) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		StatusCode:    code,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        make(http.Header),
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
	}
}

func BuildResponseString(code int, payload string) *http.Response {
	return BuildResponse(code, []byte(payload))
}

// BuildResponseJson marshals payload as the response body. It panics when payload can not be marshalled.
func BuildResponseJson(code int, payload interface{}) *http.Response {
	data, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}

	resp := BuildResponse(code, data)
	SetHeader(resp, "Content-Type", "application/json")
	return resp
}

// BuildResponseStatus builds a body-less response with a custom reason phrase.
func BuildResponseStatus(code int, reason string) *http.Response {
	resp := BuildResponse(code, nil)
	resp.Status = fmt.Sprintf("%d %s", code, reason)
	return resp
}

func SetHeader(resp *http.Response, name, value string) {
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}

	resp.Header.Set(name, value)
}
