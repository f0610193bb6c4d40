package sentiment

// Request models
type AnalyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// Response models
type AnalyzeResponse struct {
	Score      float64  `json:"score"`
	Confidence float64  `json:"confidence"`
	Emotions   []string `json:"emotions"`
	KeyPhrases []string `json:"key_phrases"`
}
