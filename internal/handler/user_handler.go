package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"usersvc/internal/service/user"
)

type UserHandler struct {
	userService *user.Service
}

func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// userInput is the body of POST /users and PUT /users/:id. All fields
// are mandatory; updates are full replacements.
type userInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindUserInput parses the request body and writes a 422 with field-level
// detail when it is malformed.
func bindUserInput(c *gin.Context) (*userInput, bool) {
	var in userInput
	err := c.ShouldBindJSON(&in)
	if err == nil {
		return &in, true
	}

	var ve validator.ValidationErrors
	var jte *json.UnmarshalTypeError
	switch {
	case errors.As(err, &ve):
		details := make([]gin.H, 0, len(ve))
		for _, fe := range ve {
			details = append(details, gin.H{
				"field": strings.ToLower(fe.Field()),
				"error": "field is " + fe.Tag(),
			})
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": details})
	case errors.As(err, &jte):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []gin.H{
			{"field": jte.Field, "error": "expected " + jte.Type.String()},
		}})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []gin.H{
			{"field": "body", "error": "invalid JSON"},
		}})
	}
	return nil, false
}

func userIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": []gin.H{
			{"field": "id", "error": "must be an integer"},
		}})
		return 0, false
	}
	return id, true
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	in, ok := bindUserInput(c)
	if !ok {
		return
	}

	u, err := h.userService.Create(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	in, ok := bindUserInput(c)
	if !ok {
		return
	}

	u, err := h.userService.Update(c.Request.Context(), id, in.Name, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	u, err := h.userService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, u)
}
