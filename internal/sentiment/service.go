package sentiment

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Service struct {
	client *Client
	logger *logrus.Logger
}

func NewService(client *Client, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// ScoreMessage analyzes a feedback message. Callers are expected to fall
// back to the local lexicon estimate when this fails.
func (s *Service) ScoreMessage(ctx context.Context, message string) (*AnalyzeResponse, error) {
	req := AnalyzeRequest{
		Text: message,
	}

	return s.client.AnalyzeWithRetry(ctx, req)
}
