package handlers

import (
	"errors"
	"strconv"

	"hellostore_backend/internal/validator"
	"hellostore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BaseHandler carries what every handler needs: form binding with
// validation, and the shared error renderer.
type BaseHandler struct {
	validator *validator.Validator
	errs      *apperrors.GinErrorHandler
}

func NewBaseHandler(v *validator.Validator, errs *apperrors.GinErrorHandler) BaseHandler {
	return BaseHandler{validator: v, errs: errs}
}

// BindForm binds the request body into obj and validates it. On validation
// failure it returns the field->message map; any other bind failure is a
// plain bad request.
func (h *BaseHandler) BindForm(c *gin.Context, obj interface{}) (map[string]string, error) {
	if err := c.ShouldBind(obj); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid form submission.")
	}

	if err := h.validator.Validate(obj); err != nil {
		if verr, ok := err.(*validator.ValidationError); ok {
			return verr.Errors, apperrors.ValidationError("Validation failed.")
		}
		return nil, apperrors.InternalError(err)
	}

	return nil, nil
}

// HandleError renders err through the shared error handler.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	h.errs.Handle(c, err)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
