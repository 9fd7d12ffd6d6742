package config

import (
	"fmt"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/pkg/validator"
)

// checkStruct 구조체의 validate 태그를 검사하고, 첫 번째 오류를 "section 설정 오류: ..." 형태의 InvalidInput 에러로 바꿉니다.
func checkStruct(s any, section string) error {
	if err := validator.Struct(s); err != nil {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 설정 오류: %s", section, validator.FormatValidationError(err)))
	}
	return nil
}
