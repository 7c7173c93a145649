package v1

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/rhinowatch/rhino-watch-sa/internal/config"
	"github.com/rhinowatch/rhino-watch-sa/internal/models"
	"github.com/rhinowatch/rhino-watch-sa/internal/service"
)

type Handler struct {
	incidentService service.IncidentService
	authService     service.AuthService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
	dialectName     string
}

func NewHandler(incidentService service.IncidentService, authService service.AuthService, logger *logrus.Logger, cfg *config.Config, dialectName string) *Handler {
	return &Handler{
		incidentService: incidentService,
		authService:     authService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
		dialectName:     dialectName,
	}
}

// log returns an entry carrying the handler name and the request id.
func (h *Handler) log(c *gin.Context, method string) *logrus.Entry {
	return h.logger.WithField("method", method).WithField("request_id", RequestIDFromContext(c))
}

// storeError maps any store-level failure to a generic 500. Driver details
// are only surfaced in development mode.
func (h *Handler) storeError(c *gin.Context, err error) {
	message := "internal server error"
	if h.cfg.Development {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}

// @Summary Service banner
// @Description Service name, status, active database engine and endpoint map
// @Tags System
// @Produce json
// @Success 200 {object} map[string]any
// @Router / [get]
func (h *Handler) home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Rhino Watch SA Dashboard API",
		"status":   "running",
		"version":  "1.0.0",
		"database": h.dialectName,
		"endpoints": gin.H{
			"health":    "/health",
			"incidents": "/api/incidents",
			"stats":     "/api/stats",
			"auth":      "/api/auth/login",
			"dashboard": "/dashboard",
		},
	})
}

// @Summary Get application health status
// @Description Health status, timestamp and active database engine
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "rhino-watch-sa",
		"timestamp": time.Now().Format(time.RFC3339),
		"database":  h.dialectName,
	})
}

// @Summary List incidents
// @Description List incidents, newest occurrence first, with optional filters
// @Tags Incidents
// @Produce json
// @Param province query string false "Filter by province"
// @Param verified query string false "Filter by verification flag (true/false)"
// @Param limit query int false "Maximum number of rows" default(50)
// @Success 200 {array} IncidentResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.log(c, "listIncidents")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := models.IncidentFilter{
		Province: c.Query("province"),
		Limit:    limit,
	}
	if v := c.Query("verified"); v != "" {
		verified := strings.EqualFold(v, "true")
		filter.Verified = &verified
	}

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its numeric identifier
// @Tags Incidents
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.log(c, "getIncident").WithField("incident_id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		log.WithError(err).Error("Failed to get incident from service")
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get dashboard statistics
// @Description Aggregate incident statistics: totals, verification, per-province counts and 30-day recency
// @Tags Statistics
// @Produce json
// @Success 200 {object} models.Statistics
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.log(c, "getStats")

	stats, err := h.incidentService.GetStatistics(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get statistics from service")
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary Authenticate
// @Description Verify a username/password pair and issue a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Missing username or password"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/auth/login [post]
func (h *Handler) login(c *gin.Context) {
	log := h.log(c, "login")

	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.Warn("Login validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.WithError(err).Error("Failed to log in")
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		User:        ModelToUserResponse(result.User),
	})
}

// @Summary Protected route example
// @Description Echo the authenticated token's subject
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProtectedResponse
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /api/protected [get]
func (h *Handler) protected(c *gin.Context) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, ProtectedResponse{
		UserID:  userID,
		Message: "Access granted",
	})
}
