package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Lual007/Intermediate-API---Squad-06/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Service   *service.SentimentService
	DB        Pinger
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.DB.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type CreateSentimentoRequest struct {
	AcaoID    int64  `json:"acao_id" validate:"required"`
	Descricao string `json:"descricao"`
}

// @Summary Submit an action for sentiment analysis
// @Tags sentimento
// @Accept json
// @Produce json
// @Param payload body CreateSentimentoRequest true "Action to analyze"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /sentimento/create [post]
func (h *Handler) SentimentoCreate(c *gin.Context) {
	var req CreateSentimentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	label, err := h.Service.Submit(c.Request.Context(), req.AcaoID, req.Descricao)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sentimento criado", "sentimento": label})
}

// @Summary List all sentiment analyses
// @Tags sentimento
// @Produce json
// @Success 200 {array} models.AnaliseSentimento
// @Router /sentimento/all [get]
func (h *Handler) SentimentoAll(c *gin.Context) {
	items, err := h.Service.ListAnalises(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) SentimentoRecorrente(c *gin.Context) {
	items, err := h.Service.Recorrentes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) SentimentoMaisFrequente(c *gin.Context) {
	res, err := h.Service.MaisFrequente(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Most negative sentiment
// @Description Lowest-score analysis among the negative labels; null when none matches
// @Tags sentimento
// @Produce json
// @Success 200 {object} models.SentimentoNegativo
// @Router /sentimento/mais-negativo [get]
func (h *Handler) SentimentoMaisNegativo(c *gin.Context) {
	res, err := h.Service.MaisNegativo(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) SentimentoQuantidade(c *gin.Context) {
	n, err := h.Service.Quantidade(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantidade": n})
}

func (h *Handler) SentimentoByScore(c *gin.Context) {
	min, err := strconv.ParseFloat(c.DefaultQuery("min", "0"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "min must be a number", nil)
		return
	}
	max, err := strconv.ParseFloat(c.DefaultQuery("max", "1"), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "max must be a number", nil)
		return
	}

	items, err := h.Service.PorScore(c.Request.Context(), min, max)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "min": min, "max": max})
}

func (h *Handler) SentimentoByData(c *gin.Context) {
	start, ok := parseDate(c.Query("start"), false)
	if !ok {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be RFC 3339 or YYYY-MM-DD", nil)
		return
	}
	end, ok := parseDate(c.Query("end"), true)
	if !ok {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be RFC 3339 or YYYY-MM-DD", nil)
		return
	}

	items, err := h.Service.PorData(c.Request.Context(), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) SentimentoByTecnico(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	items, err := h.Service.PorTecnico(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Delete a sentiment analysis
// @Tags sentimento
// @Produce json
// @Param id path int true "Analysis ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /sentimento/{id} [delete]
func (h *Handler) SentimentoDelete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sentimento removido"})
}

func (h *Handler) Atendimentos(c *gin.Context) {
	items, err := h.Service.Atendimentos(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) Tecnico(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.Service.Tecnico(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Cliente(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	res, err := h.Service.Cliente(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) TecnicosLista(c *gin.Context) {
	items, err := h.Service.Tecnicos(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) ClientesLista(c *gin.Context) {
	items, err := h.Service.Clientes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "id must be an integer", nil)
		return 0, false
	}
	return id, true
}

// parseDate accepts RFC 3339 or a bare date. A bare end date is pushed to the
// last instant of that day so the bound stays inclusive.
func parseDate(value string, endOfDay bool) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, true
}

func writeServiceError(c *gin.Context, err error) {
	var svcErr *service.Error
	msg := "Internal error"
	if errors.As(err, &svcErr) && svcErr.Msg != "" {
		msg = svcErr.Msg
	}

	switch service.KindOf(err) {
	case service.KindInvalidInput:
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", msg, nil)
	case service.KindNotFound:
		writeError(c, http.StatusNotFound, "NOT_FOUND", msg, nil)
	case service.KindServiceUnavailable:
		writeError(c, http.StatusServiceUnavailable, "ANALYSIS_UNAVAILABLE", msg, nil)
	case service.KindBadGateway:
		writeError(c, http.StatusBadGateway, "ANALYSIS_BAD_RESPONSE", msg, nil)
	case service.KindDataIntegrity:
		writeError(c, http.StatusBadRequest, "DATA_INTEGRITY", msg, nil)
	case service.KindStoreUnavailable:
		writeError(c, http.StatusInternalServerError, "DB_ERROR", msg, nil)
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", msg, nil)
	}
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
