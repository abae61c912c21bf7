package handlers

import (
	"net/http"

	"hellostore_backend/internal/middleware"
	"hellostore_backend/internal/services"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	BaseHandler
	userService  services.UserService
	orderService services.OrderService
}

func NewUserHandler(base BaseHandler, userService services.UserService, orderService services.OrderService) *UserHandler {
	return &UserHandler{
		BaseHandler:  base,
		userService:  userService,
		orderService: orderService,
	}
}

// Dashboard is the landing page after login: the user's name and their
// orders tallied per status.
func (h *UserHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	_, counts, err := h.orderService.OrdersForUser(c.Request.Context(), user.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":        "Dashboard",
		"user":         user,
		"statusCounts": counts,
	})
}

func (h *UserHandler) ShowProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), user.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "user-profile.html", gin.H{
		"title":   "Profile",
		"user":    user,
		"profile": profile,
		"saved":   c.Query("saved") == "1",
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	fieldErrors, err := h.BindForm(c, &req)
	if err != nil {
		profile, perr := h.userService.GetProfile(c.Request.Context(), user.UserID)
		if perr != nil {
			h.HandleError(c, perr)
			return
		}
		c.HTML(http.StatusBadRequest, "user-profile.html", gin.H{
			"title":   "Profile",
			"user":    user,
			"profile": profile,
			"errors":  fieldErrors,
		})
		return
	}

	if err := h.userService.UpdateProfile(c.Request.Context(), user.UserID, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/profile?saved=1")
}

func (h *UserHandler) Orders(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	buckets, counts, err := h.orderService.OrdersForUser(c.Request.Context(), user.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "user-orders.html", gin.H{
		"title":        "My orders",
		"user":         user,
		"orders":       buckets,
		"statusCounts": counts,
	})
}

// Admin panel: user management.

func (h *UserHandler) AdminListUsers(c *gin.Context) {
	page := 1
	if p, err := parsePositiveInt(c.Query("page")); err == nil {
		page = p
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), page, 20)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var prevPage, nextPage int
	if page > 1 {
		prevPage = page - 1
	}
	if int64(page*20) < total {
		nextPage = page + 1
	}

	c.HTML(http.StatusOK, "admin-users.html", gin.H{
		"title":    "Users",
		"user":     middleware.CurrentUser(c),
		"users":    users,
		"total":    total,
		"page":     page,
		"prevPage": prevPage,
		"nextPage": nextPage,
	})
}

func (h *UserHandler) AdminEditUser(c *gin.Context) {
	target, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin-user-edit.html", gin.H{
		"title":  "Edit user",
		"user":   middleware.CurrentUser(c),
		"target": target,
	})
}

func (h *UserHandler) AdminUpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	fieldErrors, err := h.BindForm(c, &req)
	if err != nil {
		target, terr := h.userService.GetUser(c.Request.Context(), c.Param("id"))
		if terr != nil {
			h.HandleError(c, terr)
			return
		}
		c.HTML(http.StatusBadRequest, "admin-user-edit.html", gin.H{
			"title":  "Edit user",
			"user":   middleware.CurrentUser(c),
			"target": target,
			"errors": fieldErrors,
		})
		return
	}

	if err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/admin")
}

func (h *UserHandler) AdminDeleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		h.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), actor.UserID, c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/admin")
}
