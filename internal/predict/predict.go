// Package predict is the HTTP client for the gesture prediction service. It
// posts payload rows as a JSON array and decodes the service's response,
// tolerating the three shapes the service family is known to produce: a bare
// array of results, an object wrapping a "predictions" array, or a single
// value.
package predict

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Shape discriminates how the response body carried its results.
type Shape int

const (
	ShapeArray Shape = iota
	ShapeWrapped
	ShapeSingle
)

// Result is one prediction entry. Raw always holds the original JSON value;
// Prediction and Confidence are populated when the value is an object
// carrying those fields.
type Result struct {
	Prediction    any
	HasPrediction bool
	Confidence    *float64
	Raw           json.RawMessage
}

func (r *Result) UnmarshalJSON(b []byte) error {
	r.Raw = append(json.RawMessage(nil), b...)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		// Not an object; Raw alone represents the value.
		return nil
	}

	if p, ok := obj["prediction"]; ok && string(p) != "null" {
		var v any
		if err := json.Unmarshal(p, &v); err != nil {
			return err
		}
		r.Prediction = v
		r.HasPrediction = true
	}
	if c, ok := obj["confidence"]; ok && string(c) != "null" {
		var f float64
		if err := json.Unmarshal(c, &f); err == nil {
			r.Confidence = &f
		}
	}
	return nil
}

// Response is the decoded service reply.
type Response struct {
	Shape   Shape
	Results []Result
}

// DecodeResponse parses a response body into results using the tolerant
// shape rules above.
func DecodeResponse(body []byte) (*Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.New("empty response body")
	}

	if trimmed[0] == '[' {
		var results []Result
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, err
		}
		return &Response{Shape: ShapeArray, Results: results}, nil
	}

	var wrapper struct {
		Predictions *[]Result `json:"predictions"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err == nil && wrapper.Predictions != nil {
		return &Response{Shape: ShapeWrapped, Results: *wrapper.Predictions}, nil
	}

	var single Result
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	return &Response{Shape: ShapeSingle, Results: []Result{single}}, nil
}

// StatusError is returned for any non-2xx response; Body is the server's
// response body text, surfaced verbatim to the user.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
}

// Client posts selected rows to the prediction endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New returns a client for the given endpoint URL. No request timeout is
// set: an in-flight submit stays pending until the server answers.
func New(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Predict sends the payload rows and decodes the reply. Errors are terminal
// for the attempt; the caller retries only on a fresh user action.
func (c *Client) Predict(rows []map[string]any) (*Response, error) {
	body, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	decoded, err := DecodeResponse(respBody)
	if err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	return decoded, nil
}
