package errors

import (
	"errors"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is an application error carrying the HTTP status it should be rendered with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new Error
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

// Engine error taxonomy. Handlers and tests match on these with errors.Is, so every
// engine operation must return one of them (possibly wrapped) for business-rule
// violations rather than a raw gorm error.
var (
	// ErrInsufficientBalance is returned when a redemption is attempted below cost.
	// Recoverable: the user can earn more tokens and retry.
	ErrInsufficientBalance = New("insufficient token balance", http.StatusUnprocessableEntity)

	// ErrInvalidTransition is returned when a status change is not allowed from the
	// record's current state.
	ErrInvalidTransition = New("status transition not allowed", http.StatusConflict)

	// ErrNotAuthorized is returned when the acting user lacks the required role or
	// ownership. The message is deliberately generic so it leaks nothing about
	// whether the resource exists.
	ErrNotAuthorized = New("not authorized", http.StatusForbidden)

	// ErrNotFound is returned when a referenced report/item/redemption is absent.
	ErrNotFound = New("resource not found", http.StatusNotFound)

	// ErrStorage is returned when the underlying transaction aborted. The whole
	// operation rolled back, so the caller may retry the user action from scratch.
	ErrStorage = New("storage error", http.StatusInternalServerError)
)

var (
	InActiveUserError      = errors.New("user inactive")
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
)

// Is lets wrapped *Error values match their sentinel with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Message == t.Message && e.Status == t.Status
}

// ErrorHandler renders rate-limit rejections.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"errors": "Too many requests. Try again in " + time.Until(info.ResetTime).String(),
	})
}
