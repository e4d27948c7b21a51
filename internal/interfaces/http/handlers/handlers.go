package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/PavaniTiago/lcp-network-api/internal/application/usecases"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/repositories"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

type Handlers struct {
	Survey    *SurveyHandler
	Analytics *AnalyticsHandler
	Admin     *AdminHandler
}

func NewHandlers(useCases *usecases.UseCases, log *zap.Logger) *Handlers {
	return &Handlers{
		Survey:    NewSurveyHandler(useCases.Registry, useCases.Submission, useCases.Status, log),
		Analytics: NewAnalyticsHandler(useCases.Analytics, log),
		Admin:     NewAdminHandler(useCases.Viewers, log),
	}
}

// yearParam lê o ano da rota; ausente ou inválido vira ErrMissingYear
func yearParam(c *fiber.Ctx) (int, error) {
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year <= 0 {
		return 0, usecases.ErrMissingYear
	}
	return year, nil
}

// respondError traduz os erros dos casos de uso em respostas HTTP
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var fieldErrs survey.FieldErrors
	var allocErr *survey.AllocationExceededError
	var submitErr *usecases.SubmissionError

	switch {
	case errors.As(err, &fieldErrs):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": fieldErrs})
	case errors.As(err, &allocErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": allocErr.Error(),
			"field": allocErr.Field,
			"total": allocErr.Total,
		})
	case errors.Is(err, usecases.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecases.ErrMissingYear),
		errors.Is(err, survey.ErrUnknownYear),
		errors.Is(err, usecases.ErrNotNumeric):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecases.ErrSubmissionInFlight),
		errors.Is(err, usecases.ErrSurveyCompleted),
		errors.Is(err, usecases.ErrStaleResult):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.As(err, &submitErr):
		log.Error("Falha ao gravar a pesquisa", zap.Int("year", submitErr.Year), zap.Error(submitErr.Err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Não foi possível salvar a pesquisa, tente novamente"})
	case errors.Is(err, usecases.ErrFieldNotVisible):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, usecases.ErrUnknownField), errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	log.Error("Erro inesperado", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erro interno do servidor"})
}
