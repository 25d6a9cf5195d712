package function

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/model"
)

// auditLogInput is the body of a manual audit log submission.
type auditLogInput struct {
	Action     string         `json:"Action"`
	EntityType string         `json:"EntityType"`
	Details    map[string]any `json:"Details"`
}

func (h *Handler) recentAuditLogs(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	entries, err := h.audit.Recent(ctx)
	if err != nil {
		return h.respondServiceError(ctx, "RecentAuditLogs", err)
	}
	if entries == nil {
		entries = []model.AuditLog{}
	}
	return respondJSON(http.StatusOK, entries)
}

func (h *Handler) appendAuditLog(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body, err := requestBody(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Invalid request body"))
	}

	var in auditLogInput
	if err := json.Unmarshal(body, &in); err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Invalid JSON body"))
	}

	if err := h.audit.Record(ctx, in.Action, in.EntityType, in.Details); err != nil {
		return h.respondServiceError(ctx, "AppendAuditLog", err)
	}
	return respondJSON(http.StatusOK, map[string]string{"message": "Audit log entry created"})
}
