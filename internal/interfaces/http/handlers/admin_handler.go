package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/application/usecases"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
)

// AdminHandler lida com as operações administrativas
type AdminHandler struct {
	viewers *usecases.ViewerUseCase
	log     *zap.Logger
}

// NewAdminHandler cria uma nova instância de AdminHandler
func NewAdminHandler(viewers *usecases.ViewerUseCase, log *zap.Logger) *AdminHandler {
	return &AdminHandler{viewers: viewers, log: log}
}

type createViewerRequest struct {
	entities.NewViewer
	SurveyData map[string]interface{} `json:"survey_data"`
}

// CreateViewer cria uma conta de visualizador com a pesquisa do ano preenchida
// @Summary Cria visualizador
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} entities.ViewerAccount
// @Failure 422 {object} map[string]interface{} "Erros de validação"
// @Router /admin/viewers [post]
func (h *AdminHandler) CreateViewer(c *fiber.Ctx) error {
	var req createViewerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	account, err := h.viewers.CreateViewer(c.UserContext(), req.NewViewer, req.SurveyData)
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.log.Info("Visualizador criado", zap.String("user_id", account.UserID), zap.Int("year", req.SurveyYear))
	return c.Status(fiber.StatusCreated).JSON(account)
}
