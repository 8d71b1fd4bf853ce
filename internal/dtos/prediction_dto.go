package dtos

// PredictionRequest is the body sent to the prediction service and accepted
// by our own JSON API. The page form binds the same field.
type PredictionRequest struct {
	Description string `json:"description" form:"description"`
}

// PredictionResult is whatever the prediction service answered. Fields the
// service leaves out stay at their zero value.
type PredictionResult struct {
	Fraudulent  bool    `json:"fraudulent"`
	Confidence  float64 `json:"confidence"`
	CleanedText string  `json:"cleaned_text"`
}

// ErrorResult replaces a PredictionResult when anything went wrong.
type ErrorResult struct {
	Error string `json:"error"`
}

// Explanation lists the terms that pushed the model towards its verdict.
type Explanation struct {
	TopFeatures map[string]float64 `json:"top_features"`
	Note        string             `json:"note"`
}

// UpstreamHealth is the prediction service's own health report.
type UpstreamHealth struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
