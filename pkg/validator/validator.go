// Package validator 注册gin binding使用的自定义校验规则,并把校验错误转换为 字段→信息 映射
//
// 使用方式：
//
//	type BookAddRequest struct {
//	    Title string `json:"title" binding:"required,booktitle"`
//	    ISBN  string `json:"isbn" binding:"required,isbn"`
//	    Genre string `json:"genre" binding:"required,genre"`
//	}
//
// 启动时调用Setup与RegisterEnum,handler中ShouldBindJSON失败时调用TranslateErrors。
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	// TitleRX 书名只允许字母、数字和空格
	TitleRX = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

	// ISBNRX ISBN只允许数字和短横线
	ISBNRX = regexp.MustCompile(`^[0-9-]+$`)
)

var (
	mu       sync.RWMutex
	messages = map[string]string{
		"booktitle": "Title must contain only letters and numbers",
		"isbn":      "ISBN must contain only numbers and dashes",
	}
	// fieldMessages 字段级覆盖, key为 字段.tag
	fieldMessages = map[string]string{
		"quantityInStock.min": "quantityInStock must be greater than zero.",
		"price.min":           "price must be greater than zero.",
		"price.gt":            "price must be greater than zero.",
		"quantity.min":        "quantity must be at least 1",
	}
)

// ErrEngine gin未使用go-playground/validator
var ErrEngine = errors.New("validator: binding engine is not *validator.Validate")

// Setup 注册json字段名与正则规则
func Setup() error {
	v, err := engine()
	if err != nil {
		return err
	}

	// 错误信息使用json字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("booktitle", matches(TitleRX)); err != nil {
		return err
	}
	return v.RegisterValidation("isbn", matches(ISBNRX))
}

// RegisterEnum 注册枚举校验,值不在allowed中时返回message
func RegisterEnum(tag string, allowed []string, message string) error {
	v, err := engine()
	if err != nil {
		return err
	}

	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}

	mu.Lock()
	messages[tag] = message
	mu.Unlock()

	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, ok := set[fl.Field().String()]
		return ok
	})
}

// TranslateErrors 绑定错误 → 字段→信息
func TranslateErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := fe.Field()
			if _, exists := out[field]; exists {
				continue
			}
			out[field] = message(fe)
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		out[field] = fmt.Sprintf("%s must be of type %s", field, typeErr.Type.String())
		return out
	}

	out["body"] = "Malformed request body"
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	mu.RLock()
	msg, ok := fieldMessages[field+"."+fe.Tag()]
	if !ok {
		msg, ok = messages[fe.Tag()]
	}
	mu.RUnlock()
	if ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return field + " is required."
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func matches(rx *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return rx.MatchString(fl.Field().String())
	}
}

func engine() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, ErrEngine
	}
	return v, nil
}
