package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/application/usecases"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/middleware"
)

// SurveyHandler lida com requisições relacionadas ao preenchimento das pesquisas
type SurveyHandler struct {
	registry   *survey.Registry
	submission *usecases.SubmissionUseCase
	status     *usecases.StatusUseCase
	log        *zap.Logger
}

// NewSurveyHandler cria uma nova instância de SurveyHandler
func NewSurveyHandler(registry *survey.Registry, submission *usecases.SubmissionUseCase, status *usecases.StatusUseCase, log *zap.Logger) *SurveyHandler {
	return &SurveyHandler{
		registry:   registry,
		submission: submission,
		status:     status,
		log:        log,
	}
}

// surveyJSON é a forma da resposta devolvida ao formulário
type surveyJSON struct {
	ID          string                 `json:"id"`
	UserID      string                 `json:"user_id"`
	Year        int                    `json:"year"`
	Completed   bool                   `json:"completed"`
	CompletedAt *time.Time             `json:"completed_at"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Data        map[string]interface{} `json:"data"`
}

func toSurveyJSON(resp *entities.SurveyResponse) surveyJSON {
	return surveyJSON{
		ID:          resp.ID,
		UserID:      resp.UserID,
		Year:        resp.Year,
		Completed:   resp.Completed(),
		CompletedAt: resp.CompletedAt,
		CreatedAt:   resp.CreatedAt,
		UpdatedAt:   resp.UpdatedAt,
		Data:        resp.Record.Values(),
	}
}

// GetSchemas retorna a definição dos questionários de todos os anos
// @Summary Lista os questionários
// @Tags surveys
// @Produce json
// @Success 200 {object} map[string]interface{} "Questionários por ano"
// @Router /surveys/schemas [get]
func (h *SurveyHandler) GetSchemas(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"years":   h.registry.Years(),
		"schemas": h.registry.Schemas(),
	})
}

// GetStatus informa em quais anos o usuário iniciou ou concluiu a pesquisa
// @Summary Situação das pesquisas do usuário
// @Tags surveys
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{} "Não autenticado"
// @Router /surveys/status [get]
func (h *SurveyHandler) GetStatus(c *fiber.Ctx) error {
	statuses, err := h.status.Statuses(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": statuses})
}

// GetSurvey retorna a resposta do usuário para o ano
// @Summary Resposta do usuário
// @Tags surveys
// @Produce json
// @Param year path int true "Ano da pesquisa"
// @Success 200 {object} surveyJSON
// @Failure 404 {object} map[string]interface{} "Pesquisa não iniciada"
// @Router /surveys/{year} [get]
func (h *SurveyHandler) GetSurvey(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	resp, err := h.submission.Get(c.UserContext(), middleware.UserID(c), year)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toSurveyJSON(resp))
}

// SaveDraft grava uma resposta parcial
// @Summary Salva rascunho
// @Tags surveys
// @Accept json
// @Produce json
// @Param year path int true "Ano da pesquisa"
// @Success 200 {object} surveyJSON
// @Failure 409 {object} map[string]interface{} "Pesquisa já enviada"
// @Failure 422 {object} map[string]interface{} "Campos mal formados"
// @Router /surveys/{year}/draft [put]
func (h *SurveyHandler) SaveDraft(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var input map[string]interface{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	resp, err := h.submission.SaveDraft(c.UserContext(), middleware.UserID(c), year, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(toSurveyJSON(resp))
}

// Submit valida e envia a pesquisa
// @Summary Envia a pesquisa
// @Tags surveys
// @Accept json
// @Produce json
// @Param year path int true "Ano da pesquisa"
// @Success 201 {object} surveyJSON
// @Failure 422 {object} map[string]interface{} "Erros de validação"
// @Failure 502 {object} map[string]interface{} "Falha ao gravar"
// @Router /surveys/{year}/submit [post]
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	var input map[string]interface{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	resp, err := h.submission.Submit(c.UserContext(), middleware.UserID(c), year, input)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSurveyJSON(resp))
}
