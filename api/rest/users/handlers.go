package users

import (
	"net/http"

	"codeberg.org/algopatterns/exceptionfilter/algopatterns/users"
	"codeberg.org/algopatterns/exceptionfilter/internal/auth"
	"codeberg.org/algopatterns/exceptionfilter/internal/errors"
	"github.com/gin-gonic/gin"
)

// CreateUserHandler godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.CreateUserRequest true "user to create"
// @Success 201 {object} users.User
// @Failure 400 {object} errors.ExceptionBody
// @Failure 409 {object} errors.Envelope
// @Router /api/v1/users [post]
func CreateUserHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(errors.NewBadRequestException(err.Error()))
			return
		}

		user, err := store.Create(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

// GetUserHandler godoc
// @Summary Get a user by ID
// @Description The user themselves and admins get the full record; everyone else the public fields
// @Tags users
// @Produce json
// @Param id path string true "user ID"
// @Success 200 {object} users.User
// @Success 200 {object} PublicUser
// @Failure 404 {object} errors.Envelope
// @Router /api/v1/users/{id} [get]
func GetUserHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := errors.PathUUID(c, "id", "user")
		if err != nil {
			_ = c.Error(err)
			return
		}

		user, err := store.FindByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}

		if viewerID, ok := auth.GetUserID(c); ok && (viewerID == user.ID || auth.IsAdmin(c)) {
			c.JSON(http.StatusOK, user)
			return
		}

		c.JSON(http.StatusOK, publicView(user))
	}
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Description Users may delete themselves; admins may delete anyone
// @Tags users
// @Param id path string true "user ID"
// @Success 204
// @Failure 400 {object} errors.Envelope
// @Failure 403 {object} errors.Envelope
// @Failure 404 {object} errors.Envelope
// @Router /api/v1/users/{id} [delete]
// @Security BearerAuth
func DeleteUserHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := errors.PathUUID(c, "id", "user")
		if err != nil {
			_ = c.Error(err)
			return
		}

		userID, _ := auth.GetUserID(c)
		if userID != id && !auth.IsAdmin(c) {
			_ = c.Error(users.ErrPermissionDenied)
			return
		}

		if err := store.Delete(c.Request.Context(), id); err != nil {
			_ = c.Error(err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
