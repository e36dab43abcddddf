package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"goaltrack/internal/auth"
	"goaltrack/internal/domain"
	"goaltrack/internal/repository"
	"goaltrack/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	goals  service.GoalService
	tokens *auth.TokenService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, goals service.GoalService, tokens *auth.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		goals:  goals,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})

		protected := api.Group("", AuthRequired(h.tokens))
		{
			protected.GET("/auth/me", h.me)
			protected.POST("/goals", h.createGoal)
			protected.GET("/goals", h.listGoals)
			protected.PUT("/goals/:id", h.updateGoal)
			protected.DELETE("/goals/:id", h.deleteGoal)
		}
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type goalRequest struct {
	Description string   `json:"description"`
	Target      *float64 `json:"target"`
	Progress    *float64 `json:"progress"`
}

type authResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type goalResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Target      float64 `json:"target"`
	Progress    float64 `json:"progress"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	result, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.renderAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authToResponse(result))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}

	result, err := h.users.Login(c.Request.Context(), login, req.Password)
	if err != nil {
		h.renderAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, authToResponse(result))
}

func (h *Handler) me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       identity.UserID,
		"username": identity.Username,
	})
}

func (h *Handler) createGoal(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	goal, err := h.goals.Create(c.Request.Context(), identity.UserID, goalInput(req))
	if err != nil {
		h.renderGoalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goalToResponse(*goal))
}

func (h *Handler) listGoals(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	goals, err := h.goals.List(c.Request.Context(), identity.UserID)
	if err != nil {
		h.renderGoalError(c, err)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i := range goals {
		resp[i] = goalToResponse(goals[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateGoal(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	goal, err := h.goals.Update(c.Request.Context(), identity.UserID, c.Param("id"), goalInput(req))
	if err != nil {
		h.renderGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, goalToResponse(*goal))
}

func (h *Handler) deleteGoal(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
		return
	}

	if err := h.goals.Delete(c.Request.Context(), identity.UserID, c.Param("id")); err != nil {
		h.renderGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

// renderAuthError maps registration/login failures to responses. Internal
// detail goes to the log, never to the client.
func (h *Handler) renderAuthError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, validationBody(ve))
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	default:
		h.logger.WithError(err).Error("auth request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func (h *Handler) renderGoalError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, validationBody(ve))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Goal not found"})
	default:
		h.logger.WithError(err).Error("goal request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func validationBody(ve *service.ValidationError) gin.H {
	fields := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		fields[f.Field] = f.Message
	}
	return gin.H{
		"message": ve.Fields[0].Message,
		"errors":  fields,
	}
}

func goalInput(req goalRequest) service.GoalInput {
	return service.GoalInput{
		Description: req.Description,
		Target:      req.Target,
		Progress:    req.Progress,
	}
}

func authToResponse(result *service.AuthResult) authResponse {
	return authResponse{
		ID:       result.User.ID,
		Username: result.User.Username,
		Email:    result.User.Email,
		Token:    result.Token,
	}
}

func goalToResponse(goal domain.Goal) goalResponse {
	return goalResponse{
		ID:          goal.ID,
		Description: goal.Description,
		Target:      goal.Target,
		Progress:    goal.Progress,
		CreatedAt:   goal.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   goal.UpdatedAt.Format(time.RFC3339),
	}
}
