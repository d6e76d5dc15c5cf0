package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/dto"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/speech"
)

// SpeechHandler handles the text-to-speech endpoint.
type SpeechHandler struct {
	speechClient speech.Client
}

// NewSpeechHandler creates a new SpeechHandler.
func NewSpeechHandler(speechClient speech.Client) *SpeechHandler {
	return &SpeechHandler{
		speechClient: speechClient,
	}
}

// Synthesize handles POST /speech/synthesize
// @Summary Synthesize text to audio
// @Description Converts a chat answer to audio and streams the file
// @Tags Speech
// @Accept json
// @Produce audio/mpeg
// @Param request body dto.SynthesizeRequest true "Text to speak"
// @Success 200 {file} file "Audio stream"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/speech/synthesize [post]
func (h *SpeechHandler) Synthesize(c *gin.Context) {
	var req dto.SynthesizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	path, err := h.speechClient.Synthesize(c.Request.Context(), req.Text)
	if err != nil {
		middleware.HandleError(c, errors.NewServiceUnavailableError("speech service", err))
		return
	}
	// The audio file is disposable; remove it once the response is written.
	defer h.speechClient.Cleanup(path)

	c.File(path)
}
