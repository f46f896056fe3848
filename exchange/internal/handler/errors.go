package handler

import (
	"net/http"

	"github.com/Astemirdum/book-exchange/exchange/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const kindInternal = "InternalError"

var kindStatus = map[errs.Kind]int{
	errs.KindValidation:         http.StatusBadRequest,
	errs.KindInvalidState:       http.StatusBadRequest,
	errs.KindInsufficientPoints: http.StatusBadRequest,
	errs.KindDuplicateRequest:   http.StatusBadRequest,
	errs.KindDeadlineExpired:    http.StatusBadRequest,
	errs.KindAlreadyResolved:    http.StatusBadRequest,
	errs.KindInvalidRating:      http.StatusBadRequest,
	errs.KindSelfExchange:       http.StatusBadRequest,
	errs.KindAuthentication:     http.StatusUnauthorized,
	errs.KindAuthorization:      http.StatusForbidden,
	errs.KindNotFound:           http.StatusNotFound,
}

type errorResponse struct {
	Kind    string         `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// errorHandler renders every error returned by a handler or middleware.
func (h *Handler) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, body := h.toResponse(err)
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		h.log.Error("write error response", zap.Error(err))
	}
}

func (h *Handler) toResponse(err error) (int, errorResponse) {
	if e, ok := errs.As(err); ok {
		code, ok := kindStatus[e.Kind]
		if !ok {
			code = http.StatusInternalServerError
		}
		return code, errorResponse{Kind: string(e.Kind), Message: e.Error(), Details: e.Details}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		resp := errorResponse{Kind: kindForStatus(he.Code), Message: http.StatusText(he.Code)}
		if msg, ok := he.Message.(string); ok {
			resp.Message = msg
		}
		return he.Code, resp
	}
	h.log.Error("internal error", zap.Error(err))
	return http.StatusInternalServerError, errorResponse{Kind: kindInternal, Message: "internal server error"}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return string(errs.KindValidation)
	case http.StatusUnauthorized:
		return string(errs.KindAuthentication)
	case http.StatusForbidden:
		return string(errs.KindAuthorization)
	case http.StatusNotFound:
		return string(errs.KindNotFound)
	}
	if code >= http.StatusInternalServerError {
		return kindInternal
	}
	return http.StatusText(code)
}

func invalid(err error) error {
	return errs.New(errs.KindValidation, "%s", err.Error())
}
