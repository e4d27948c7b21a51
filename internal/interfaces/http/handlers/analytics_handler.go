package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/application/usecases"
	"github.com/PavaniTiago/lcp-network-api/internal/interfaces/http/middleware"
)

// AnalyticsHandler lida com as consultas do painel de análises
type AnalyticsHandler struct {
	analytics *usecases.AnalyticsUseCase
	log       *zap.Logger
}

// NewAnalyticsHandler cria uma nova instância de AnalyticsHandler
func NewAnalyticsHandler(analytics *usecases.AnalyticsUseCase, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, log: log}
}

// GetOverview retorna as métricas principais do ano
// @Summary Visão geral do ano
// @Tags analytics
// @Produce json
// @Param year path int true "Ano da pesquisa"
// @Param completed query bool false "Apenas respostas enviadas" default(true)
// @Success 200 {object} model.Overview
// @Router /analytics/{year} [get]
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	completedOnly := c.QueryBool("completed", true)
	overview, err := h.analytics.Overview(c.UserContext(), viewKey(c, "overview"), year, completedOnly)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(overview)
}

// GetDistribution conta as respostas de um campo
// @Summary Distribuição de um campo
// @Tags analytics
// @Produce json
// @Param year path int true "Ano da pesquisa"
// @Param field path string true "Nome do campo"
// @Success 200 {object} model.Distribution
// @Failure 403 {object} map[string]interface{} "Campo não visível para o papel"
// @Router /analytics/{year}/distribution/{field} [get]
func (h *AnalyticsHandler) GetDistribution(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	dist, err := h.analytics.Distribution(c.UserContext(), viewKey(c, "distribution"), middleware.RoleOf(c), year, c.Params("field"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dist)
}

// GetStats resume um campo numérico
// @Summary Estatísticas de um campo
// @Tags analytics
// @Produce json
// @Param year path int true "Ano da pesquisa"
// @Param field path string true "Nome do campo"
// @Success 200 {object} model.FieldStats
// @Router /analytics/{year}/stats/{field} [get]
func (h *AnalyticsHandler) GetStats(c *fiber.Ctx) error {
	year, err := yearParam(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	stats, err := h.analytics.Stats(c.UserContext(), viewKey(c, "stats"), middleware.RoleOf(c), year, c.Params("field"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(stats)
}

// viewKey identifica o painel do usuário; uma consulta nova no mesmo painel descarta a anterior
func viewKey(c *fiber.Ctx, view string) string {
	return middleware.UserID(c) + ":" + view
}
