package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/crowd_alert_system/internal/config"
	"github.com/shenikar/crowd_alert_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	crowdService service.CrowdService
	logger       *logrus.Logger
	validate     *validator.Validate
	cfg          *config.Config
}

func NewHandler(crowdService service.CrowdService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		crowdService: crowdService,
		logger:       logger,
		validate:     validator.New(),
		cfg:          cfg,
	}
}

// @Summary Register a participant
// @Description Register an event participant. A phone that is already registered returns the existing participant with 200.
// @Tags Participants
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param participant body RegisterParticipantRequest true "Participant registration request"
// @Success 201 {object} ParticipantResponse
// @Success 200 {object} ParticipantResponse "Already registered"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /participants [post]
func (h *Handler) registerParticipant(c *gin.Context) {
	var input RegisterParticipantRequest
	log := h.logger.WithField("method", "registerParticipant")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, created, err := h.crowdService.RegisterParticipant(c.Request.Context(), input.Name, input.Phone)
	if err != nil {
		h.respondError(c, log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, ModelToParticipantResponse(participant))
}

// @Summary Get participant by ID
// @Description Get a single registered participant by ID.
// @Tags Participants
// @Produce json
// @Param id path string true "Participant ID"
// @Success 200 {object} ParticipantResponse
// @Failure 400 {object} map[string]string "Invalid participant ID"
// @Failure 404 {object} map[string]string "Participant not found"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /participants/{id} [get]
func (h *Handler) getParticipant(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant ID"})
		return
	}
	log := h.logger.WithField("method", "getParticipant").WithField("id", id)

	participant, err := h.crowdService.GetParticipant(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToParticipantResponse(participant))
}

// @Summary Submit participant location
// @Description Record a location ping and classify crowd density around it. Crowded positions trigger alerts to nearby participants.
// @Tags Location
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body SubmitLocationRequest true "Location ping"
// @Success 200 {object} LocationResponse
// @Failure 400 {object} map[string]string "Invalid request body, coordinates or unknown participant"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /location [post]
func (h *Handler) submitLocation(c *gin.Context) {
	var input SubmitLocationRequest
	log := h.logger.WithField("method", "submitLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// формат uuid уже проверен валидатором
	participantID := uuid.MustParse(input.ParticipantID)

	result, err := h.crowdService.SubmitLocation(c.Request.Context(), participantID, *input.Latitude, *input.Longitude)
	if err != nil {
		h.respondError(c, log.WithField("participant_id", participantID), err)
		return
	}
	c.JSON(http.StatusOK, ModelToLocationResponse(result))
}

// @Summary Get crowd snapshot
// @Description Classify every participant active within the monitoring window.
// @Tags Crowd
// @Produce json
// @Success 200 {object} SnapshotResponse
// @Failure 503 {object} map[string]string "Store unavailable"
// @Router /crowd/snapshot [get]
func (h *Handler) getSnapshot(c *gin.Context) {
	log := h.logger.WithField("method", "getSnapshot")

	snapshot, err := h.crowdService.GetActiveSnapshot(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSnapshotResponse(snapshot))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError переводит ошибку сервиса в HTTP-статус
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		log.WithError(err).Warn("Request rejected by service")
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, service.ErrParticipantNotFound):
		log.WithError(err).Warn("Participant not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "participant not found"})
	case errors.Is(err, service.ErrStoreUnavailable):
		log.WithError(err).Error("Store unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	default:
		log.WithError(err).Error("Unexpected service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
