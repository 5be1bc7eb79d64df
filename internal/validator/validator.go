package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequestValidator は echo.Validator の実装
// リクエストDTOの validate タグを検査する
type RequestValidator struct {
	v *validator.Validate
}

func New() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	//エラーのフィールド名はjsonタグの名前にする
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return &RequestValidator{v: v}
}

func (r *RequestValidator) Validate(i interface{}) error {
	return r.v.Struct(i)
}

// 最初に失敗したフィールド名
func FirstInvalidField(err error) (string, bool) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "", false
	}
	return verrs[0].Field(), true
}
