package models

type SubmitFeedbackRequest struct {
	FeedbackType string `json:"feedback_type" binding:"required"`
	Message      string `json:"message" binding:"required"`
	Rating       *int   `json:"rating"`
	Category     string `json:"category"`
	Subcategory  string `json:"subcategory"`
	FeatureName  string `json:"feature_name"`
	PageURL      string `json:"page_url"`
	SessionID    string `json:"session_id"`
}

type SubmitNPSRequest struct {
	Score  *int   `json:"score" binding:"required"`
	Reason string `json:"reason"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
