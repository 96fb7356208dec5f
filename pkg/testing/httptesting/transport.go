package httptesting

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

type RoundTripFunc func(req *http.Request) (*http.Response, error)

// MockTransport routes requests to handlers by method and url path, and keeps every request it served.
type MockTransport struct {
	mu       sync.Mutex
	handlers map[string]map[string]RoundTripFunc
	requests []*http.Request
}

func (transport *MockTransport) Handle(method, path string, f RoundTripFunc) {
	transport.mu.Lock()
	defer transport.mu.Unlock()

	if transport.handlers == nil {
		transport.handlers = make(map[string]map[string]RoundTripFunc)
	}

	method = strings.ToUpper(method)
	if transport.handlers[method] == nil {
		transport.handlers[method] = make(map[string]RoundTripFunc)
	}

	transport.handlers[method][path] = f
}

func (transport *MockTransport) GET(path string, f RoundTripFunc) {
	transport.Handle(http.MethodGet, path, f)
}

func (transport *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport.mu.Lock()
	transport.requests = append(transport.requests, req)
	f, ok := transport.handlers[strings.ToUpper(req.Method)][req.URL.Path]
	transport.mu.Unlock()

	if !ok {
		return nil, errors.Errorf("roundtrip mock to %s %s is not defined", req.Method, req.URL.Path)
	}

	resp, err := f(req)
	if resp != nil && resp.Request == nil {
		resp.Request = req
	}

	return resp, err
}

// Requests returns the requests served so far, in order.
func (transport *MockTransport) Requests() []*http.Request {
	transport.mu.Lock()
	defer transport.mu.Unlock()

	return append([]*http.Request(nil), transport.requests...)
}

// Calls counts the requests sent to path.
func (transport *MockTransport) Calls(path string) int {
	n := 0
	for _, req := range transport.Requests() {
		if req.URL.Path == path {
			n++
		}
	}

	return n
}

func MockWithJsonReply(path string, rawData interface{}) *http.Client {
	transport := &MockTransport{}
	transport.GET(path, func(_ *http.Request) (*http.Response, error) {
		return BuildResponseJson(http.StatusOK, rawData), nil
	})
	return &http.Client{Transport: transport}
}

// RecorderEntry records a single request and response pair.
// It is used for (de)serialization to and from files.
type RecorderEntry struct {
	Timestamp time.Time       `json:"timestamp"`
	Request   *RequestRecord  `json:"request"`
	Response  *ResponseRecord `json:"response"`
	Error     string          `json:"error,omitempty"`
}

type RequestRecord struct {
	Method string      `json:"method"`
	URL    string      `json:"url"`
	Header http.Header `json:"header"`
}

type ResponseRecord struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Header     http.Header `json:"header"`
	Body       string      `json:"body,omitempty"`
}

// Recorder records request and response pairs to a file through an underlying transport,
// and plays them back by registering handlers to a MockTransport.
type Recorder struct {
	mu        sync.Mutex
	entries   []RecorderEntry
	transport http.RoundTripper
}

// NewRecorder creates a Recorder sending the actual requests through transport.
func NewRecorder(transport http.RoundTripper) *Recorder {
	return &Recorder{
		transport: transport,
	}
}

var credentialPattern = regexp.MustCompile(`(?i)^(authorization|api[-_]key|x[-_]api[-_]key|cookie|access[-_]token|secret)$`)

// filterCredentials removes credentials from the request headers and the query string.
func filterCredentials(header http.Header, u *url.URL) {
	for key := range header {
		if credentialPattern.MatchString(key) {
			header.Del(key)
		}
	}

	u.RawQuery = filterQuery(u.RawQuery)
}

// filterQuery drops credential parameters from a raw query, keeping the order of the others.
func filterQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	var kept []string
	for _, kv := range strings.Split(rawQuery, "&") {
		key, _, _ := strings.Cut(kv, "=")
		if name, err := url.QueryUnescape(key); err == nil && credentialPattern.MatchString(name) {
			continue
		}
		kept = append(kept, kv)
	}

	return strings.Join(kept, "&")
}

// FilterURL returns rawURL without credential query parameters.
func FilterURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	u.RawQuery = filterQuery(u.RawQuery)
	return u.String()
}

// RecordEntry records a request and its response with the credentials filtered out.
func (r *Recorder) RecordEntry(req *http.Request, resp *http.Response, err error) {
	u := *req.URL
	header := req.Header.Clone()
	filterCredentials(header, &u)

	entry := RecorderEntry{
		Timestamp: time.Now(),
		Request: &RequestRecord{
			Method: req.Method,
			URL:    u.String(),
			Header: header,
		},
	}

	if resp != nil {
		entry.Response = &ResponseRecord{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
		}
		if resp.Body != nil {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			entry.Response.Body = string(bodyBytes)
			resp.Body = io.NopCloser(strings.NewReader(entry.Response.Body))
		}
	}

	if err != nil {
		entry.Error = err.Error()
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	r.mu.Unlock()
}

// Save saves the recorded entries to a JSON file.
func (r *Recorder) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	defer file.Close()

	r.mu.Lock()
	defer r.mu.Unlock()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.entries)
}

// Load loads recorded entries from a JSON file.
func (r *Recorder) Load(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var entries []RecorderEntry
	if err := json.NewDecoder(file).Decode(&entries); err != nil {
		return errors.Wrapf(err, "unable to decode recording %s", filename)
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Entries() []RecorderEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]RecorderEntry(nil), r.entries...)
}

// BuildResponseFromRecord creates an http.Response from a ResponseRecord.
func BuildResponseFromRecord(respRec *ResponseRecord) *http.Response {
	return &http.Response{
		Status:     respRec.Status,
		StatusCode: respRec.StatusCode,
		Header:     respRec.Header.Clone(),
		Body:       io.NopCloser(strings.NewReader(respRec.Body)),
	}
}

// LoadFromRecorder registers a handler for every recorded request, replying with the recorded response.
func (transport *MockTransport) LoadFromRecorder(recorder *Recorder) error {
	for _, entry := range recorder.Entries() {
		if entry.Request == nil || entry.Response == nil {
			continue
		}

		u, err := url.Parse(entry.Request.URL)
		if err != nil {
			return err
		}

		respRec := entry.Response
		transport.Handle(entry.Request.Method, u.Path, func(_ *http.Request) (*http.Response, error) {
			return BuildResponseFromRecord(respRec), nil
		})
	}
	return nil
}

// RoundTrip sends the request through the underlying transport and records the pair.
func (r *Recorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.transport.RoundTrip(req)
	r.RecordEntry(req, resp, err)
	return resp, err
}
