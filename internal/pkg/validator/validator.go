// Package validator 설정과 API 요청 구조체가 함께 쓰는 go-playground/validator 인스턴스를 제공합니다.
//
// 필드 이름은 korean 태그, json 태그, 구조체 필드 이름 순으로 정해지며
// FormatValidationError는 첫 번째 검증 오류를 한국어 문장으로 바꿉니다.
package validator

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/darkkaiser/price-scraper/pkg/cronx"
	"github.com/go-playground/validator/v10"
)

const (
	// TagCronSpec 6필드 Cron 표현식(또는 @every 같은 디스크립터)을 검증하는 커스텀 태그입니다.
	TagCronSpec = "cron_spec"

	// TagCORSOrigin "*" 또는 Scheme://Host[:Port] 형식의 CORS Origin을 검증하는 커스텀 태그입니다.
	TagCORSOrigin = "cors_origin"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// Get 공유 validator 인스턴스를 반환합니다. 여러 고루틴에서 호출해도 같은 인스턴스입니다.
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(fieldName)

		for tag, fn := range map[string]validator.Func{
			TagCronSpec:   validateCronSpec,
			TagCORSOrigin: validateCORSOrigin,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("커스텀 검증 태그 등록 실패 (%s): %v", tag, err))
			}
		}

		instance = v
	})

	return instance
}

// Struct 구조체의 validate 태그를 기준으로 검증합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// Var 단일 값을 tag 규칙으로 검증합니다.
func Var(field any, tag string) error {
	return Get().Var(field, tag)
}

func fieldName(fld reflect.StructField) string {
	if name := fld.Tag.Get("korean"); name != "" {
		return name
	}

	if name, _, _ := strings.Cut(fld.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}

	return fld.Name
}

// validateCronSpec 빈 값은 통과시킵니다. 필수 여부는 required 태그로 따로 지정합니다.
func validateCronSpec(fl validator.FieldLevel) bool {
	spec := fl.Field().String()
	if strings.TrimSpace(spec) == "" {
		return true
	}

	return cronx.Validate(spec) == nil
}

// validateCORSOrigin 경로, 쿼리, 프래그먼트, 사용자 정보가 붙은 Origin은 거부합니다.
func validateCORSOrigin(fl validator.FieldLevel) bool {
	origin := strings.TrimSpace(fl.Field().String())
	if origin == "*" {
		return true
	}
	if origin == "" || strings.HasSuffix(origin, "/") {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || u.Hostname() == "" || u.User != nil {
		return false
	}
	return u.Path == "" && u.RawQuery == "" && u.Fragment == ""
}

// FormatValidationError 검증 오류를 사용자에게 보여줄 한국어 메시지로 바꿉니다.
// 오류가 여러 개이면 첫 번째만 사용합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

func formatFieldError(fe validator.FieldError) string {
	name := fe.Field()
	isString := fe.Kind() == reflect.String
	isCollection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required", "required_if", "required_unless", "required_with":
		return fmt.Sprintf("%s는 필수입니다", name)

	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", name, fe.Param())
		}
		if fe.Tag() == "gte" && !isCollection {
			return fmt.Sprintf("%s는 %s 이상이어야 합니다", name, fe.Param())
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", name, fe.Param())

	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", name, fe.Param())
		}
		if fe.Tag() == "lte" && !isCollection {
			return fmt.Sprintf("%s는 %s 이하이어야 합니다", name, fe.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", name, fe.Param())

	case "len":
		if isCollection {
			return fmt.Sprintf("%s는 갯수가 %s개여야 합니다", name, fe.Param())
		}
		return fmt.Sprintf("%s는 %s자여야 합니다", name, fe.Param())

	case "url", "http_url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", name)

	case "oneof":
		return fmt.Sprintf("%s는 허용된 값 중 하나여야 합니다 [%s]", name, fe.Param())

	case "boolean":
		return fmt.Sprintf("%s는 true 또는 false 값이어야 합니다", name)

	case "hostname_port":
		return fmt.Sprintf("%s는 호스트:포트 형식이어야 합니다", name)

	case TagCORSOrigin:
		return fmt.Sprintf("%s는 올바른 Origin 형식이어야 합니다 (%v, 형식: Scheme://Host[:Port])", name, fe.Value())

	case TagCronSpec:
		return fmt.Sprintf("%s는 올바른 Cron 표현식이어야 합니다 (%v)", name, fe.Value())

	default:
		return fmt.Sprintf("%s 값 검증 실패 (%s)", name, fe.Tag())
	}
}
