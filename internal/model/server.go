package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Server wraps an ONNX session for the gesture classifier. A Server is
// always constructed, even when the model file is missing or unloadable; in
// that case Loaded reports false and Info carries the attempted path and the
// load error, matching what /model_info serves.
type Server struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]

	Metadata  Metadata
	pathTried string
	loadErr   error
}

// NewServer loads the model at modelPath with the feature/class metadata at
// metadataPath. If modelPath does not exist, the directory is scanned for
// any .onnx file before giving up.
func NewServer(modelPath, metadataPath string) *Server {
	s := &Server{}
	s.loadErr = s.load(modelPath, metadataPath)
	return s
}

func (s *Server) load(modelPath, metadataPath string) error {
	if _, err := os.Stat(modelPath); err != nil {
		modelPath = findModelFile(filepath.Dir(modelPath), modelPath)
	}
	s.pathTried = modelPath

	if _, err := os.Stat(modelPath); err != nil {
		return fmt.Errorf("model file not found: %s", modelPath)
	}

	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return fmt.Errorf("read metadata: %w", err)
	}
	if err := json.Unmarshal(metaFile, &s.Metadata); err != nil {
		return fmt.Errorf("parse metadata: %w", err)
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initialize ONNX environment: %w", err)
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(s.Metadata.InputShape...))
	if err != nil {
		return fmt.Errorf("create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(s.Metadata.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return fmt.Errorf("create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return fmt.Errorf("create ONNX session: %w", err)
	}

	s.session = session
	s.inputTensor = inputTensor
	s.outputTensor = outputTensor
	return nil
}

// findModelFile returns the first .onnx file in dir, or fallback when none
// exists.
func findModelFile(dir, fallback string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fallback
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".onnx") {
			return filepath.Join(dir, e.Name())
		}
	}
	return fallback
}

// Loaded reports whether a usable session exists.
func (s *Server) Loaded() bool {
	return s.session != nil
}

// Info returns the load diagnostics served by /model_info.
func (s *Server) Info() Info {
	info := Info{
		ModelLoaded:    s.Loaded(),
		ModelPathTried: s.pathTried,
	}
	if s.loadErr != nil {
		info.LastLoadError = s.loadErr.Error()
	}
	return info
}

// Predict runs inference for each row, in order. Rows are aligned to the
// metadata feature list; a missing or null feature contributes 0, any other
// non-numeric value fails the whole batch. The session owns one reusable
// tensor pair, so inference is serialized.
func (s *Server) Predict(rows []map[string]any) ([]RowResult, error) {
	if !s.Loaded() {
		return nil, fmt.Errorf("model not loaded")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]RowResult, 0, len(rows))
	for i, row := range rows {
		vec, err := s.featureVector(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		copy(s.inputTensor.GetData(), vec)
		if err := s.session.Run(); err != nil {
			return nil, fmt.Errorf("inference failed: %w", err)
		}

		code, conf := argmaxSoftmax(s.outputTensor.GetData())
		results = append(results, RowResult{Prediction: code, Confidence: conf})
	}

	return results, nil
}

func (s *Server) featureVector(row map[string]any) ([]float32, error) {
	vec := make([]float32, len(s.Metadata.Features))
	for i, name := range s.Metadata.Features {
		v, ok := row[name]
		if !ok || v == nil {
			continue
		}
		f, err := toFloat32(v)
		if err != nil {
			return nil, fmt.Errorf("feature %q: %w", name, err)
		}
		vec[i] = f
	}
	return vec, nil
}

func toFloat32(v any) (float32, error) {
	switch n := v.(type) {
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	case int:
		return float32(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, err
		}
		return float32(f), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric value %q", n)
		}
		return float32(f), nil
	default:
		return 0, fmt.Errorf("non-numeric value of type %T", v)
	}
}

// argmaxSoftmax returns the index of the largest logit and its softmax
// probability.
func argmaxSoftmax(logits []float32) (int, float64) {
	if len(logits) == 0 {
		return 0, 0
	}

	maxIdx := 0
	maxVal := logits[0]
	for i, v := range logits {
		if v > maxVal {
			maxVal = v
			maxIdx = i
		}
	}

	var sum float64
	for _, v := range logits {
		sum += math.Exp(float64(v - maxVal))
	}

	return maxIdx, 1.0 / sum
}

// Close releases the session and tensors.
func (s *Server) Close() {
	if s.inputTensor != nil {
		s.inputTensor.Destroy()
	}
	if s.outputTensor != nil {
		s.outputTensor.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
		ort.DestroyEnvironment()
	}
}
