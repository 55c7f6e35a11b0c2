package usecase

import (
	"context"
	"errors"

	"finance-chatbot/internal/domain"
)

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type AskService struct {
	llm Completer
}

type AskInput struct {
	Question string
}

func NewAskService(llm Completer) (*AskService, error) {
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	return &AskService{llm: llm}, nil
}

// Ask forwards the question to the model and normalizes whatever comes back.
// The question goes into the prompt verbatim; empty questions are legal.
func (s *AskService) Ask(ctx context.Context, in AskInput) (domain.Answer, error) {
	raw, err := s.llm.Complete(ctx, buildPrompt(in.Question))
	if err != nil {
		if status, ok := upstreamStatusCode(err); ok && status == 429 {
			return domain.Answer{}, newError(ErrorRateLimited, "openai_rate_limited", err)
		}
		return domain.Answer{}, newError(ErrorUpstream, "openai_error", err)
	}
	return normalizeAnswer(raw), nil
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
