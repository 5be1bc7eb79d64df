package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	repo "storefront/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// ストアのエラーをHTTPErrorに変換する
// 想定外のエラーはログに残して500にする
func fromStoreError(ctx context.Context, logger *slog.Logger, op string, err error, attrs ...slog.Attr) error {
	switch {
	case errors.Is(err, repo.ErrInvalidArgument):
		return NewHTTPError(http.StatusBadRequest, "invalid")
	case errors.Is(err, repo.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrEmptyCart):
		return NewHTTPError(http.StatusBadRequest, "cart empty")
	case errors.Is(err, repo.ErrProductUnavailable):
		return NewHTTPError(http.StatusConflict, "product unavailable")
	case errors.Is(err, repo.ErrDuplicateReview):
		return NewHTTPError(http.StatusConflict, "duplicate review")
	}

	attrs = append(attrs, slog.String("op", op), slog.String("error", err.Error()))
	logger.LogAttrs(ctx, slog.LevelError, "store call failed", attrs...)
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}
