package model

// Metadata describes the exported model: the feature columns the input rows
// must provide (in tensor order) and the gesture classes in output order.
type Metadata struct {
	Features    []string `json:"features"`
	Classes     []string `json:"classes"`
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
}

// RowResult is one prediction: the label-encoded class index and the softmax
// probability of that class.
type RowResult struct {
	Prediction int     `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// Info is the /model_info debug payload for diagnosing load failures.
type Info struct {
	ModelLoaded    bool   `json:"model_loaded"`
	ModelPathTried string `json:"model_path_tried"`
	LastLoadError  string `json:"last_load_error,omitempty"`
}
