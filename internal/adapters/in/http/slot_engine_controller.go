package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/dental-slots-engine/internal/config"
	"github.com/suchimauz/dental-slots-engine/internal/core/domain"
	"github.com/suchimauz/dental-slots-engine/internal/core/json_types"
	"github.com/suchimauz/dental-slots-engine/internal/core/ports/in"
)

type SlotEngineController struct {
	useCase in.SlotEngineUseCase
	cfg     *config.Config
}

func NewSlotEngineController(useCase in.SlotEngineUseCase, cfg *config.Config) *SlotEngineController {
	return &SlotEngineController{
		useCase: useCase,
		cfg:     cfg,
	}
}

func (c *SlotEngineController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/slots/:doctorId", c.getDaySlots)
		api.POST("/slots/check", c.checkAvailability)
		api.GET("/patients/:patientId/active-appointment", c.checkActiveAppointment)
	}
}

func (c *SlotEngineController) getDaySlots(ctx *gin.Context) {
	doctorID, err := uuid.Parse(ctx.Param("doctorId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doctor ID format"})
		return
	}

	date, err := json_types.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	slots, debugInfo, err := c.useCase.GetDaySlots(ctx.Request.Context(), doctorID, date)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	// Полный аннотированный список - для отрисовки сетки,
	// отфильтрованный - для выбора свободного слота
	response := gin.H{
		"doctorId":       doctorID,
		"date":           date,
		"slots":          slots,
		"availableSlots": domain.AvailableSlots(slots),
	}
	if c.cfg.IsLocal() {
		response["debug"] = debugInfo
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *SlotEngineController) checkAvailability(ctx *gin.Context) {
	var query domain.SlotQuery
	if err := ctx.ShouldBindJSON(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.CheckAvailability(ctx.Request.Context(), query)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *SlotEngineController) checkActiveAppointment(ctx *gin.Context) {
	patientID, err := uuid.Parse(ctx.Param("patientId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid patient ID format"})
		return
	}

	var from json_types.Date
	if fromParam := ctx.Query("from"); fromParam != "" {
		from, err = json_types.ParseDate(fromParam)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date format"})
			return
		}
	}

	result, err := c.useCase.CheckActiveAppointment(ctx.Request.Context(), patientID, from)
	if err != nil {
		c.renderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// Ошибки валидации входа - 400, остальное - 500
func (c *SlotEngineController) renderError(ctx *gin.Context, err error) {
	if errors.Is(err, domain.ErrInvalidDate) ||
		errors.Is(err, domain.ErrInvalidTimeRange) ||
		errors.Is(err, domain.ErrInvalidDuration) ||
		errors.Is(err, domain.ErrInvalidBuffer) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (c *SlotEngineController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
