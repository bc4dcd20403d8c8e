package handler

import (
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/dto"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/middleware"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile, history and statistics requests.
type UserHandler struct {
	userService service.UserService
	quizService service.QuizService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.UserService, quizService service.QuizService) *UserHandler {
	return &UserHandler{
		userService: userService,
		quizService: quizService,
	}
}

// GetMyProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserProfileResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	profile, err := h.userService.GetUserProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// GetMyResults godoc
// @Summary Get the authenticated user's attempt history
// @Description Returns attempt summaries in reverse-chronological order.
// @Tags users
// @Produce json
// @Param limit query int false "Page size (default 10)"
// @Param offset query int false "Items to skip"
// @Security ApiKeyAuth
// @Success 200 {object} dto.AttemptHistoryResponse
// @Router /users/me/results [get]
func (h *UserHandler) GetMyResults(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	pagination := dto.Pagination{
		Limit:  c.QueryInt("limit", 10),
		Offset: c.QueryInt("offset", 0),
	}

	history, err := h.quizService.GetHistory(c.Context(), userID, pagination)
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// GetMyStats godoc
// @Summary Get the authenticated user's aggregate statistics
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.UserStatsResponse
// @Router /users/me/stats [get]
func (h *UserHandler) GetMyStats(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	stats, err := h.quizService.GetStats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
