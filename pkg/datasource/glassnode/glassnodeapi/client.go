package glassnodeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/c9s/requestgen"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const defaultHTTPTimeout = time.Second * 15

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.glassnode.com"

const apiKeyParam = "api_key"

var log = logrus.WithField("datasource", "glassnode")

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks . APIClient

// APIClient is the request side of RestClient used by the request objects.
type APIClient interface {
	NewAuthenticatedRequest(ctx context.Context, method, refURL string, params Params) (*http.Request, error)
	SendRequest(req *http.Request) (*requestgen.Response, error)
}

type RestClient struct {
	requestgen.BaseAPIClient

	apiKey string
}

func NewRestClient() *RestClient {
	u, err := url.Parse(DefaultBaseURL)
	if err != nil {
		panic(err)
	}

	return &RestClient{
		BaseAPIClient: requestgen.BaseAPIClient{
			BaseURL: u,
			HttpClient: &http.Client{
				Timeout: defaultHTTPTimeout,
			},
		},
	}
}

func (c *RestClient) Auth(apiKey string) {
	// pragma: allowlist nextline secret
	c.apiKey = apiKey
}

// NewAuthenticatedRequest builds a request to refURL, relative to the base url.
// The api key is always the last query parameter and overrides any caller supplied "api_key".
// See https://docs.glassnode.com/basic-api/api-key#usage
func (c *RestClient) NewAuthenticatedRequest(ctx context.Context, method, refURL string, params Params) (*http.Request, error) {
	query := params.Del(apiKeyParam)
	query = append(query, Param{Key: apiKeyParam, Value: c.apiKey})

	pathURL, err := c.resolve(refURL)
	if err != nil {
		return nil, err
	}
	pathURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, pathURL.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Accept", "application/json")
	return req, nil
}

// resolve joins refURL onto the base url, keeping any path prefix of the base url.
func (c *RestClient) resolve(refURL string) (*url.URL, error) {
	rel, err := url.Parse(refURL)
	if err != nil {
		return nil, err
	}

	if rel.IsAbs() {
		return rel, nil
	}

	u := *c.BaseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(rel.Path, "/")
	u.RawPath = ""
	return &u, nil
}

// SendRequest performs exactly one round trip and reads the whole body.
func (c *RestClient) SendRequest(req *http.Request) (*requestgen.Response, error) {
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return requestgen.NewResponse(resp)
}

// Execute sends one GET request to endpoint and parses the response body as JSON.
// The parsed value is returned uninterpreted.
func Execute(ctx context.Context, client APIClient, endpoint string, params Params) (*fastjson.Value, error) {
	response, err := do(ctx, client, endpoint, params)
	if err != nil {
		return nil, err
	}

	var parser fastjson.Parser
	v, err := parser.ParseBytes(response.Body)
	if err != nil {
		return nil, &RequestError{
			Kind:       MalformedBody,
			StatusCode: response.StatusCode,
			StatusText: statusText(response.Response),
			Endpoint:   endpoint,
			Body:       response.Body,
			Err:        err,
		}
	}

	return v, nil
}

// ExecuteRaw is Execute without parsing: the body is only checked to be valid JSON.
func ExecuteRaw(ctx context.Context, client APIClient, endpoint string, params Params) (json.RawMessage, error) {
	response, err := do(ctx, client, endpoint, params)
	if err != nil {
		return nil, err
	}

	if err := fastjson.ValidateBytes(response.Body); err != nil {
		return nil, &RequestError{
			Kind:       MalformedBody,
			StatusCode: response.StatusCode,
			StatusText: statusText(response.Response),
			Endpoint:   endpoint,
			Body:       response.Body,
			Err:        err,
		}
	}

	return json.RawMessage(response.Body), nil
}

func do(ctx context.Context, client APIClient, endpoint string, params Params) (*requestgen.Response, error) {
	req, err := client.NewAuthenticatedRequest(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to build request for %s", endpoint)
	}

	log.Debugf("GET %s", maskAPIKey(req.URL.String()))

	start := time.Now()
	response, err := client.SendRequest(req)
	if err != nil {
		recordRequestMetrics(endpoint, 0, time.Since(start))

		// *url.Error carries the full request url
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = maskAPIKey(urlErr.URL)
		}

		return nil, &RequestError{
			Kind:     NetworkFailure,
			Endpoint: endpoint,
			Err:      err,
		}
	}

	recordRequestMetrics(endpoint, response.StatusCode, time.Since(start))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		kind := HTTPError
		if response.StatusCode == http.StatusBadRequest {
			kind = BadRequest
		}

		reqErr := &RequestError{
			Kind:       kind,
			StatusCode: response.StatusCode,
			StatusText: statusText(response.Response),
			Endpoint:   endpoint,
			Body:       response.Body,
		}

		log.WithError(reqErr).Debugf("GET %s failed, response: %s", endpoint, response.Body)
		return nil, reqErr
	}

	return response, nil
}

var apiKeyPattern = regexp.MustCompile(`(api_key=)(\w{0,4})[^&]*`)

func maskAPIKey(s string) string {
	return apiKeyPattern.ReplaceAllString(s, "${1}${2}******")
}
