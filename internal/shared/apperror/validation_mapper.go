package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// employee_id -> Employee Id
func formatFieldName(s string) string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(s, "_", " "))
}

// MapValidationError menerjemahkan error binding Gin ke AppError 400.
// Hanya pelanggaran pertama yang dilaporkan; client memperbaiki satu
// field per respons.
func MapValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest)
	}

	e := verrs[0]
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required":
		return RequiredField(field)
	default:
		return InvalidField(field)
	}
}
