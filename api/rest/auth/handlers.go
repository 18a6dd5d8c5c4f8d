package auth

import (
	"net/http"

	"codeberg.org/algopatterns/exceptionfilter/internal/auth"
	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"github.com/gin-gonic/gin"
)

// IssueTokenHandler godoc
// @Summary Issue a token for an existing user
// @Description Development helper; issues a 7 day JWT without credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "user to issue a token for"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ExceptionBody
// @Failure 404 {object} errors.Envelope
// @Router /api/v1/auth/token [post]
func IssueTokenHandler(finder UserFinder, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(errors.NewBadRequestException(err.Error()))
			return
		}

		user, err := finder.FindByID(c.Request.Context(), req.UserID)
		if err != nil {
			_ = c.Error(err)
			return
		}

		token, err := auth.GenerateJWT(jwtSecret, user.ID, user.Email, user.IsAdmin)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /api/v1/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler(finder UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			_ = c.Error(auth.ErrMissingToken)
			return
		}

		user, err := finder.FindByID(c.Request.Context(), userID)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}
