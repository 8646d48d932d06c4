package comparison

import (
	"errors"

	"db-compare/core/compare"
	"db-compare/core/logger"
	"db-compare/core/provider"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/comparisons")
	group.Get("/", h.HandleList)
	group.Post("/:name/run", h.HandleRun)
	group.Get("/:name/report", h.HandleReport)
}

// comparisonInfo is the list view of a configured comparison.
type comparisonInfo struct {
	Name          string   `json:"name"`
	MatchFields   []string `json:"match_fields"`
	CompareFields []string `json:"compare_fields"`
	SourceType    string   `json:"source_type"`
	TargetType    string   `json:"target_type"`
}

// HandleList returns the configured comparisons.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	comparisons := h.service.Comparisons()
	out := make([]comparisonInfo, len(comparisons))
	for i, cmp := range comparisons {
		out[i] = comparisonInfo{
			Name:          cmp.Name,
			MatchFields:   cmp.MatchFields,
			CompareFields: cmp.CompareFields,
			SourceType:    cmp.Source.Type,
			TargetType:    cmp.Target.Type,
		}
	}
	return c.JSON(out)
}

// HandleRun runs one comparison and returns its result.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.logger, c).With(zap.String("comparison", name))

	res, err := h.service.RunOne(c.Context(), name)
	if err != nil {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Comparison run failed", zap.Error(err))
		} else {
			l.Warn("Comparison run rejected", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(res)
}

// HandleReport returns the last completed run of a comparison.
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	name := c.Params("name")
	if _, ok := h.service.Find(name); !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrNotFound.Error() + ": " + name,
		})
	}

	res, ok := h.service.Last(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "comparison has not been run yet",
		})
	}
	return c.JSON(res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, compare.ErrConfiguration):
		return fiber.StatusBadRequest
	case errors.Is(err, provider.ErrProvider):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
