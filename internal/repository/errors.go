package repository

import "errors"

// ストア共通のエラー分類。errors.Is で判定する。
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrEmptyCart          = errors.New("cart empty")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrDuplicateReview    = errors.New("duplicate review")
)
