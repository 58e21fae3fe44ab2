package handler

import (
	"newsquiz/internal/domain"
	"newsquiz/internal/dto"
	"newsquiz/internal/logger"
	"newsquiz/internal/middleware"
	"newsquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// RegisterRoutes mounts the quiz endpoints on router.
func (h *QuizHandler) RegisterRoutes(router fiber.Router, vm *middleware.ValidationMiddleware) {
	quiz := router.Group("/quiz")
	quiz.Get("/all", h.ListQuizzes)
	quiz.Get("/meta/:category", vm.ValidateCategory(), h.GetQuizMeta)
	quiz.Get("/:category/:date", vm.ValidateQuizKey(), h.GetQuiz)
	quiz.Post("/", h.SaveQuiz)
	quiz.Put("/", h.SaveQuiz)
	quiz.Delete("/:category/:date", vm.ValidateQuizKey(), h.DeleteQuiz)
}

// GetQuizMeta godoc
// @Summary List quiz dates
// @Description Lists the stored quiz dates of a game type, newest first
// @Tags quiz
// @Accept json
// @Produce json
// @Param category path string true "Game type (BlackSwan, PrisonersDilemma, SignalDecoding)"
// @Success 200 {object} dto.QuizMetaResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/meta/{category} [get]
func (h *QuizHandler) GetQuizMeta(c *fiber.Ctx) error {
	category, _ := c.Locals(middleware.LocalCategory).(string)

	resp, err := h.service.GetQuizMeta(c.UserContext(), category)
	if err != nil {
		logger.Get().Error("Failed to list quiz dates", zap.Error(err), zap.String("gameType", category))
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List all quizzes
// @Description Returns every stored quiz grouped by game type, newest first within a game type
// @Tags quiz
// @Accept json
// @Produce json
// @Success 200 {array} dto.QuizListItem
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/all [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	items, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return err
	}
	return c.JSON(items)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns the quiz stored for a game type and date
// @Tags quiz
// @Accept json
// @Produce json
// @Param category path string true "Game type"
// @Param date path string true "Quiz date (YYYY-MM-DD)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/{category}/{date} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	category, _ := c.Locals(middleware.LocalCategory).(string)
	date, _ := c.Locals(middleware.LocalDate).(string)

	resp, err := h.service.GetQuiz(c.UserContext(), category, date)
	if err != nil {
		if !domain.HasCode(err, domain.CodeNotFound) {
			logger.Get().Error("Failed to get quiz",
				zap.Error(err),
				zap.String("gameType", category),
				zap.String("quizDate", date),
			)
		}
		return err
	}
	return c.JSON(resp)
}

// SaveQuiz godoc
// @Summary Create or replace a quiz
// @Description Upserts the question list for a game type and date. Answers 201 when the key is new and 200 when an existing quiz was replaced.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SaveQuizRequest true "Quiz to store"
// @Success 200 {object} dto.SaveQuizResponse
// @Success 201 {object} dto.SaveQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz [post]
// @Router /quiz [put]
func (h *QuizHandler) SaveQuiz(c *fiber.Ctx) error {
	var req dto.SaveQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse quiz body", zap.Error(err))
		return domain.NewInvalidInputError("request body must be a JSON object")
	}

	resp, err := h.service.SaveQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if resp.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(resp)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Removes the quiz stored for a game type and date
// @Tags quiz
// @Produce json
// @Param category path string true "Game type"
// @Param date path string true "Quiz date (YYYY-MM-DD)"
// @Success 200 {object} dto.DeleteQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/{category}/{date} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	category, _ := c.Locals(middleware.LocalCategory).(string)
	date, _ := c.Locals(middleware.LocalDate).(string)

	resp, err := h.service.DeleteQuiz(c.UserContext(), category, date)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
