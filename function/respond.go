package function

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/service"
)

// pathSegments splits a request path into segments, dropping the /api
// prefix so routes match with or without a gateway stage mapping.
func pathSegments(path string) []string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) > 0 && segs[0] == "api" {
		segs = segs[1:]
	}
	return segs
}

// matches reports whether segs matches the pattern, where "*" accepts
// any non-empty segment.
func matches(segs []string, pattern ...string) bool {
	if len(segs) != len(pattern) {
		return false
	}
	for i, p := range pattern {
		if p == "*" {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if segs[i] != p {
			return false
		}
	}
	return true
}

// requestBody returns the raw request body, reversing the base64
// encoding API Gateway applies to binary payloads.
func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, fmt.Errorf("decode request body: %w", err)
	}
	return body, nil
}

func respondJSON(status int, payload any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"Internal server error"}`,
		}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

func keyBody(message, partitionKey, rowKey string) map[string]string {
	return map[string]string{
		"message":      message,
		"partitionKey": partitionKey,
		"rowKey":       rowKey,
	}
}

// respondServiceError maps the service error taxonomy to a response:
// validation 400 with the reason, not-found 404, anything else a
// generic 500 with the cause logged server-side.
func (h *Handler) respondServiceError(ctx context.Context, operation string, err error) (events.APIGatewayProxyResponse, error) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		return respondJSON(http.StatusBadRequest, errorBody(validation.Reason))
	}
	if errors.Is(err, service.ErrNotFound) {
		return respondJSON(http.StatusNotFound, errorBody("Not found"))
	}
	h.logger.ErrorContext(ctx, "request failed",
		"operation", operation,
		"error", err,
	)
	return respondJSON(http.StatusInternalServerError, errorBody("Internal server error"))
}
