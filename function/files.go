package function

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/abcretail/retail/fileshare"
)

func (h *Handler) uploadFile(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	form, err := parseMultipart(req)
	if err != nil {
		return respondJSON(http.StatusBadRequest, errorBody("Multipart form data required"))
	}

	file := form.File()
	if file == nil || file.FileName == "" {
		return respondJSON(http.StatusBadRequest, errorBody("A file is required"))
	}

	if err := h.files.Save(file.FileName, bytes.NewReader(file.Data)); err != nil {
		if errors.Is(err, fileshare.ErrBadFileName) {
			return respondJSON(http.StatusBadRequest, errorBody("Invalid file name"))
		}
		return h.respondServiceError(ctx, "UploadFile", err)
	}
	return respondJSON(http.StatusOK, map[string]string{"fileName": file.FileName})
}
