package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ManthanKaria/fraud-job-detector/internal/dtos"
	"github.com/ManthanKaria/fraud-job-detector/internal/services"
	"github.com/ManthanKaria/fraud-job-detector/internal/view"
	"github.com/ManthanKaria/fraud-job-detector/internal/web"
)

// PredictionHandler serves the form page and the JSON API in front of the
// prediction service.
type PredictionHandler struct {
	PredictionService *services.PredictionService
}

// NewPredictionHandler creates the handler with its dependencies
func NewPredictionHandler(p *services.PredictionService) *PredictionHandler {
	return &PredictionHandler{PredictionService: p}
}

// HealthCheck godoc
// @Summary  Service liveness
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Router   /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Index is GET / and always starts from an idle page.
func (h *PredictionHandler) Index(c *gin.Context) {
	h.renderPage(c, view.NewState(), "")
}

// Submit is POST / from the form. Whatever happens upstream, the page comes
// back usable with the submitted text still in the textarea.
func (h *PredictionHandler) Submit(c *gin.Context) {
	state := view.NewState()
	state.Begin()

	var req dtos.PredictionRequest
	outcome := services.FailedOutcome()
	if err := c.ShouldBind(&req); err != nil {
		log.Printf("❌ Could not bind form: %v", err)
	} else {
		outcome = h.PredictionService.Submit(c.Request.Context(), req.Description)
	}

	if err := state.Settle(outcome); err != nil {
		log.Printf("❌ %v", err)
	}

	h.renderPage(c, state, req.Description)
}

func (h *PredictionHandler) renderPage(c *gin.Context, state *view.State, text string) {
	page, err := view.NewPage(state, text)
	if err != nil {
		log.Printf("❌ Page render failed: %v", err)
		c.String(http.StatusInternalServerError, services.GenericErrorMessage)
		return
	}
	c.HTML(http.StatusOK, web.IndexTemplate, page)
}

// Predict godoc
// @Summary      Classify a job posting
// @Description  Relays the description to the prediction service
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        request body     dtos.PredictionRequest true "Job description"
// @Success      200     {object} dtos.PredictionResult
// @Failure      400     {object} dtos.ErrorResult
// @Failure      502     {object} dtos.ErrorResult
// @Router       /predict [post]
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req dtos.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dtos.ErrorResult{Error: "Invalid JSON format: " + err.Error()})
		return
	}

	outcome := h.PredictionService.Submit(c.Request.Context(), req.Description)
	if outcome.Failed() {
		c.JSON(http.StatusBadGateway, outcome.Error)
		return
	}
	c.JSON(http.StatusOK, outcome.Result)
}

// Explain godoc
// @Summary      Explain a classification
// @Description  Returns the terms that weighed most towards a fraudulent verdict
// @Tags         explanations
// @Accept       json
// @Produce      json
// @Param        request body     dtos.PredictionRequest true "Job description"
// @Success      200     {object} dtos.Explanation
// @Failure      400     {object} dtos.ErrorResult
// @Failure      502     {object} dtos.ErrorResult
// @Router       /explain [post]
func (h *PredictionHandler) Explain(c *gin.Context) {
	var req dtos.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dtos.ErrorResult{Error: "Invalid JSON format: " + err.Error()})
		return
	}

	explanation, err := h.PredictionService.Explain(c.Request.Context(), req.Description)
	if err != nil {
		log.Printf("❌ Explanation failed: %v", err)
		c.JSON(http.StatusBadGateway, dtos.ErrorResult{Error: services.GenericErrorMessage})
		return
	}
	c.JSON(http.StatusOK, explanation)
}

// UpstreamHealth godoc
// @Summary  Prediction service health
// @Tags     health
// @Produce  json
// @Success  200 {object} dtos.UpstreamHealth
// @Failure  502 {object} dtos.ErrorResult
// @Router   /health/upstream [get]
func (h *PredictionHandler) UpstreamHealth(c *gin.Context) {
	health, err := h.PredictionService.CheckUpstream(c.Request.Context())
	if err != nil {
		log.Printf("❌ Upstream health check failed: %v", err)
		c.JSON(http.StatusBadGateway, dtos.ErrorResult{Error: services.GenericErrorMessage})
		return
	}
	c.JSON(http.StatusOK, health)
}
