package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_core/internal/apperrors"
	"github.com/SscSPs/bookkeeping_core/internal/middleware"
	"github.com/gin-gonic/gin"
)

// genericStorageMessage is the only text a caller ever sees for lock or storage faults.
const genericStorageMessage = "Database error. Please try again."

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errorCodes maps specific failures to stable machine-readable codes.
// Order matters: the first match wins.
var errorCodes = []struct {
	err  error
	code string
}{
	{apperrors.ErrInvalidAccountType, "INVALID_ACCOUNT_TYPE"},
	{apperrors.ErrInvalidName, "INVALID_NAME"},
	{apperrors.ErrDuplicateName, "DUPLICATE_NAME"},
	{apperrors.ErrParentNotFound, "PARENT_NOT_FOUND"},
	{apperrors.ErrParentCycle, "PARENT_CYCLE"},
	{apperrors.ErrAccountNotFound, "ACCOUNT_NOT_FOUND"},
	{apperrors.ErrInvalidAmount, "INVALID_AMOUNT"},
	{apperrors.ErrInvalidDate, "INVALID_DATE"},
	{apperrors.ErrCannotDeactivateWithHistory, "CANNOT_DEACTIVATE_WITH_HISTORY"},
	{apperrors.ErrSelfReferentialTransaction, "SELF_REFERENTIAL_TRANSACTION"},
	{apperrors.ErrAccountInactive, "ACCOUNT_INACTIVE"},
	{apperrors.ErrLockUnavailable, "LOCK_UNAVAILABLE"},
	{apperrors.ErrStorage, "STORAGE_ERROR"},
}

// toAppError translates a service error into its boundary form.
func toAppError(err error) (*apperrors.AppError, string) {
	code := ""
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			code = entry.code
			break
		}
	}

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return apperrors.NewAppError(http.StatusBadRequest, err.Error(), err), orDefault(code, "VALIDATION_ERROR")
	case apperrors.KindBusinessRule:
		return apperrors.NewAppError(http.StatusConflict, err.Error(), err), orDefault(code, "BUSINESS_RULE_VIOLATION")
	case apperrors.KindNotFound:
		return apperrors.NewAppError(http.StatusNotFound, "Resource not found", err), "NOT_FOUND"
	case apperrors.KindFatal:
		return apperrors.NewAppError(http.StatusInternalServerError, "Internal server error", err), "INTERNAL_ERROR"
	default:
		return apperrors.NewAppError(http.StatusServiceUnavailable, genericStorageMessage, err), orDefault(code, "STORAGE_ERROR")
	}
}

// respondError writes the boundary form of err and logs the full cause.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromContext(c)
	appErr, code := toAppError(err)

	if appErr.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("code", code), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("code", code), slog.String("error", err.Error()))
	}
	c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message, Code: code})
}

// respondBindError reports a malformed request body or parameter.
func respondBindError(c *gin.Context, err error) {
	if isAccountTypeError(err) {
		respondError(c, apperrors.ErrInvalidAccountType)
		return
	}
	middleware.GetLoggerFromContext(c).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error(), Code: "INVALID_REQUEST"})
}

func orDefault(code, fallback string) string {
	if code == "" {
		return fallback
	}
	return code
}
