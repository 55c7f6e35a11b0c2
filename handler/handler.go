package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"finance-chatbot/internal/domain"
	"finance-chatbot/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

type UseCase interface {
	Ask(ctx context.Context, in usecase.AskInput) (domain.Answer, error)
}

// askRequest carries Question as a pointer so an absent field and a
// present-but-empty one can be told apart at the boundary.
type askRequest struct {
	Question *string `json:"question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler adapts API Gateway proxy events to the ask use case. Past the
// body binding, every reply is HTTP 200: provider failures and panics are
// reported inside the answer payload, never as an error status.
type Handler struct {
	uc          UseCase
	frontendURL string
}

func NewHandler(uc UseCase, frontendURL string) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	frontendURL = strings.TrimSpace(frontendURL)
	if frontendURL == "" {
		return nil, errors.New("handler: frontend URL must not be empty")
	}
	return &Handler{uc: uc, frontendURL: frontendURL}, nil
}

// Handle never returns a non-nil error: a returned error would surface as a
// 502 from the proxy integration and break the reply contract.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := resolveCorrelationID(event.Headers)

	if event.HTTPMethod == http.MethodOptions {
		return h.respond(http.StatusNoContent, "", correlationID), nil
	}

	var req askRequest
	if err := json.Unmarshal([]byte(event.Body), &req); err != nil || req.Question == nil {
		return h.respondJSON(http.StatusBadRequest, errorResponse{Error: string(usecase.ErrorInvalidInput)}, correlationID), nil
	}

	answer := h.ask(ctx, *req.Question, correlationID)
	return h.respondJSON(http.StatusOK, answer, correlationID), nil
}

// ask converts provider failures and panics into error answers so the reply
// shape holds for every question that passes the binding.
func (h *Handler) ask(ctx context.Context, question, correlationID string) (out domain.Answer) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ask panicked", "panic", r, "correlation_id", correlationID)
			out = errorAnswer(fmt.Errorf("panic: %v", r))
		}
	}()

	res, err := h.uc.Ask(ctx, usecase.AskInput{Question: question})
	if err != nil {
		slog.Warn("ask failed", "error", err, "correlation_id", correlationID)
		return errorAnswer(err)
	}
	return res
}

func errorAnswer(err error) domain.Answer {
	return domain.Answer{
		Answer:  domain.ErrorMarker + err.Error(),
		Sources: []string{domain.FallbackSource},
	}
}

func (h *Handler) respondJSON(status int, payload any, correlationID string) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal response", "error", err, "correlation_id", correlationID)
		body = []byte(`{}`)
	}
	return h.respond(status, string(body), correlationID)
}

func (h *Handler) respond(status int, body, correlationID string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  h.frontendURL,
			"Access-Control-Allow-Methods": "*",
			"Access-Control-Allow-Headers": "*",
			correlationHeader:              correlationID,
		},
		Body: body,
	}
}

func resolveCorrelationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, correlationHeader) && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return newCorrelationID()
}

var newCorrelationID = uuid.NewString
