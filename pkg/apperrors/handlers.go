package apperrors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders AppErrors as JSON under /api/ and as an error page
// everywhere else. In production mode internal detail is never leaked.
type GinErrorHandler struct {
	Production bool
}

func (h *GinErrorHandler) Handle(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError && h.Production {
		appErr = New(appErr.Code, "Something went wrong.", appErr.HTTPCode)
	}

	if wantsJSON(c) {
		c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
		return
	}

	c.HTML(appErr.HTTPCode, "error.html", gin.H{
		"title":   "Error",
		"status":  appErr.HTTPCode,
		"message": appErr.Message,
		"details": appErr.Details,
	})
	c.Abort()
}

func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
