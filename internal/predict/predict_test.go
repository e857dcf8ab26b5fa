package predict

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponseArray(t *testing.T) {
	resp, err := DecodeResponse([]byte(`[{"prediction": 2, "confidence": 0.75}, {"prediction": 15}]`))
	require.NoError(t, err)

	assert.Equal(t, ShapeArray, resp.Shape)
	require.Len(t, resp.Results, 2)

	r := resp.Results[0]
	assert.True(t, r.HasPrediction)
	assert.Equal(t, float64(2), r.Prediction)
	require.NotNil(t, r.Confidence)
	assert.InDelta(t, 0.75, *r.Confidence, 1e-9)

	assert.Nil(t, resp.Results[1].Confidence)
}

func TestDecodeResponseWrapped(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"predictions": [{"prediction": "15"}]}`))
	require.NoError(t, err)

	assert.Equal(t, ShapeWrapped, resp.Shape)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "15", resp.Results[0].Prediction)
}

func TestDecodeResponseSingleObject(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"prediction": 3, "confidence": 0.5}`))
	require.NoError(t, err)

	assert.Equal(t, ShapeSingle, resp.Shape)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, float64(3), resp.Results[0].Prediction)
}

func TestDecodeResponseSingleScalar(t *testing.T) {
	resp, err := DecodeResponse([]byte(`15`))
	require.NoError(t, err)

	assert.Equal(t, ShapeSingle, resp.Shape)
	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].HasPrediction)
	assert.Equal(t, json.RawMessage(`15`), resp.Results[0].Raw)
}

func TestDecodeResponseObjectWithoutPrediction(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"label": "wave"}`))
	require.NoError(t, err)

	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].HasPrediction)
}

func TestDecodeResponseNullConfidence(t *testing.T) {
	resp, err := DecodeResponse([]byte(`[{"prediction": 1, "confidence": null}]`))
	require.NoError(t, err)
	assert.Nil(t, resp.Results[0].Confidence)
}

func TestDecodeResponseInvalid(t *testing.T) {
	_, err := DecodeResponse([]byte(`not json`))
	assert.Error(t, err)

	_, err = DecodeResponse([]byte(``))
	assert.Error(t, err)
}

func TestClientPredict(t *testing.T) {
	var gotBody []byte
	var gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"prediction": 2, "confidence": 0.75}]`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Predict([]map[string]any{{"x": 3, "y": 4}})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `[{"x": 3, "y": 4}]`, string(gotBody))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, float64(2), resp.Results[0].Prediction)
}

func TestClientPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Predict([]map[string]any{{"x": 1}})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "model not loaded")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestClientPredictNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL)
	_, err := c.Predict([]map[string]any{{"x": 1}})
	assert.Error(t, err)
}

func TestClientPredictDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>oops</html>`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Predict([]map[string]any{{"x": 1}})
	assert.ErrorContains(t, err, "decode prediction response")
}
