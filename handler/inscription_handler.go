package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Aashish23092/inscription-verification/dto"

	"github.com/gin-gonic/gin"
)

// InscriptionSubmitter analyses a validated submission.
type InscriptionSubmitter interface {
	Submit(ctx context.Context, req *dto.InscriptionRequest) (*dto.InscriptionResponse, error)
}

type InscriptionHandler struct {
	service     InscriptionSubmitter
	maxFileSize int64
}

func NewInscriptionHandler(service InscriptionSubmitter, maxFileSize int64) *InscriptionHandler {
	return &InscriptionHandler{
		service:     service,
		maxFileSize: maxFileSize,
	}
}

// CreateInscription handles the POST /api/v1/inscriptions endpoint
func (h *InscriptionHandler) CreateInscription(c *gin.Context) {
	log.Println("Received inscription request")

	var request dto.InscriptionRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "Invalid inscription form", err)
		return
	}

	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error(), err)
		return
	}

	response, err := h.service.Submit(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, dto.ErrMissingDocument) {
			h.sendError(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error(), err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "INSCRIPTION_FAILED", "Failed to process inscription", err)
		return
	}

	log.Printf("Inscription %s processed: %s", response.ID, response.Status)
	c.JSON(http.StatusCreated, response)
}

// sendError sends a structured error response
func (h *InscriptionHandler) sendError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}
