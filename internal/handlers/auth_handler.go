package handlers

import (
	"net/http"

	"hellostore_backend/internal/logger"
	"hellostore_backend/internal/services"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/internal/session"
	"hellostore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	BaseHandler
	authService      services.AuthService
	sessions         *session.Manager
	turnstileSiteKey string
}

func NewAuthHandler(base BaseHandler, authService services.AuthService, sessions *session.Manager, turnstileSiteKey string) *AuthHandler {
	return &AuthHandler{
		BaseHandler:      base,
		authService:      authService,
		sessions:         sessions,
		turnstileSiteKey: turnstileSiteKey,
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"title":            "Register",
		"turnstileSiteKey": h.turnstileSiteKey,
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	fieldErrors, err := h.BindForm(c, &req)
	if err != nil {
		h.renderRegister(c, http.StatusBadRequest, &req, fieldErrors, "")
		return
	}
	req.RemoteIP = c.ClientIP()

	if err := h.authService.Register(c.Request.Context(), &req); err != nil {
		appErr, _ := apperrors.AsAppError(err)
		if appErr == nil {
			h.HandleError(c, err)
			return
		}
		switch appErr.Code {
		case apperrors.CodeWeakPassword:
			// Details carries every unmet rule, so the user fixes the
			// password in one round trip.
			rules, _ := appErr.Details.([]string)
			h.renderRegisterRules(c, appErr, &req, rules)
		case apperrors.CodeEmailAlreadyExists, apperrors.CodeCaptchaFailed:
			h.renderRegister(c, appErr.HTTPCode, &req, nil, appErr.Message)
		default:
			h.HandleError(c, err)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/login?registered=1")
}

func (h *AuthHandler) renderRegister(c *gin.Context, status int, req *dto.RegisterRequest, fieldErrors map[string]string, message string) {
	c.HTML(status, "register.html", gin.H{
		"title":            "Register",
		"turnstileSiteKey": h.turnstileSiteKey,
		"firstName":        req.FirstName,
		"lastName":         req.LastName,
		"email":            req.Email,
		"errors":           fieldErrors,
		"message":          message,
	})
}

func (h *AuthHandler) renderRegisterRules(c *gin.Context, appErr *apperrors.AppError, req *dto.RegisterRequest, rules []string) {
	c.HTML(appErr.HTTPCode, "register.html", gin.H{
		"title":            "Register",
		"turnstileSiteKey": h.turnstileSiteKey,
		"firstName":        req.FirstName,
		"lastName":         req.LastName,
		"email":            req.Email,
		"message":          appErr.Message,
		"passwordRules":    rules,
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/login?verified=1")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title":            "Login",
		"turnstileSiteKey": h.turnstileSiteKey,
		"expired":          c.Query("expired") == "1",
		"registered":       c.Query("registered") == "1",
		"verified":         c.Query("verified") == "1",
		"reset":            c.Query("reset") == "1",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	fieldErrors, err := h.BindForm(c, &req)
	if err != nil {
		h.renderLogin(c, http.StatusBadRequest, &req, fieldErrors, "")
		return
	}
	req.RemoteIP = c.ClientIP()

	data, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		appErr, _ := apperrors.AsAppError(err)
		if appErr == nil {
			h.HandleError(c, err)
			return
		}
		switch appErr.Code {
		case apperrors.CodeUserNotFound,
			apperrors.CodeAccountInactive,
			apperrors.CodeEmailNotVerified,
			apperrors.CodeInvalidCredentials,
			apperrors.CodeCaptchaFailed:
			h.renderLogin(c, appErr.HTTPCode, &req, nil, appErr.Message)
		default:
			h.HandleError(c, err)
		}
		return
	}

	if _, err := h.sessions.Create(c, data); err != nil {
		h.HandleError(c, apperrors.InternalError(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/dashboard")
}

func (h *AuthHandler) renderLogin(c *gin.Context, status int, req *dto.LoginRequest, fieldErrors map[string]string, message string) {
	c.HTML(status, "login.html", gin.H{
		"title":            "Login",
		"turnstileSiteKey": h.turnstileSiteKey,
		"email":            req.Email,
		"errors":           fieldErrors,
		"message":          message,
	})
}

// Logout destroys the current session if one exists. A store failure is
// surfaced rather than leaving the user to believe they are logged out.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, _, err := h.sessions.Current(c); err == nil && id != "" {
		if derr := h.sessions.Destroy(c, id); derr != nil {
			logger.CtxError(c.Request.Context(), "failed to destroy session on logout",
				"error", derr, "session_id", id)
			h.HandleError(c, apperrors.InternalError(derr))
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) ShowForgotPassword(c *gin.Context) {
	c.HTML(http.StatusOK, "password-forgot.html", gin.H{
		"title": "Forgot password",
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.PasswordResetRequest
	fieldErrors, err := h.BindForm(c, &req)
	if err != nil {
		c.HTML(http.StatusBadRequest, "password-forgot.html", gin.H{
			"title":  "Forgot password",
			"errors": fieldErrors,
		})
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}

	// Same response whether or not the account exists.
	c.HTML(http.StatusOK, "password-forgot.html", gin.H{
		"title":   "Forgot password",
		"message": "If that email is registered, a reset link is on its way.",
	})
}

func (h *AuthHandler) ShowResetPassword(c *gin.Context) {
	c.HTML(http.StatusOK, "password-reset.html", gin.H{
		"title": "Reset password",
		"token": c.Param("token"),
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req dto.PasswordResetConfirm
	fieldErrors, err := h.BindForm(c, &req)
	if err != nil {
		c.HTML(http.StatusBadRequest, "password-reset.html", gin.H{
			"title":  "Reset password",
			"token":  token,
			"errors": fieldErrors,
		})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		appErr, _ := apperrors.AsAppError(err)
		if appErr != nil && appErr.Code == apperrors.CodeWeakPassword {
			rules, _ := appErr.Details.([]string)
			c.HTML(appErr.HTTPCode, "password-reset.html", gin.H{
				"title":         "Reset password",
				"token":         token,
				"message":       appErr.Message,
				"passwordRules": rules,
			})
			return
		}
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/users/login?reset=1")
}
