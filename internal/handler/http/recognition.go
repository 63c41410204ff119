package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/presentia-hr/presentia-backend-go/internal/domain/recognition"
	"github.com/presentia-hr/presentia-backend-go/internal/handler/http/response"
)

type RecognitionHandler interface {
	Recognize(w http.ResponseWriter, r *http.Request)
}

type RecognitionHandlerImpl struct {
	recognitionService recognition.RecognitionService
}

func NewRecognitionHandler(recognitionService recognition.RecognitionService) RecognitionHandler {
	return &RecognitionHandlerImpl{recognitionService: recognitionService}
}

// Recognize implements RecognitionHandler.
func (h *RecognitionHandlerImpl) Recognize(w http.ResponseWriter, r *http.Request) {
	var recognizeReq recognition.RecognizeRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&recognizeReq); err != nil {
		slog.Error("Recognize decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Call service
	resp, err := h.recognitionService.Recognize(r.Context(), recognizeReq)
	if err != nil {
		slog.Error("Recognize service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if !resp.Matched {
		slog.Info("Recognition unmatched", "turno", recognizeReq.Shift)
		response.SuccessWithMessage(w, resp.Message, resp)
		return
	}

	slog.Info("Recognition recorded",
		"legajo", resp.Legajo, "tipo", resp.Kind, "fecha", resp.BusinessDate)
	response.Success(w, resp)
}
