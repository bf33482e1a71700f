package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var colorCodeRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// FormValidator plugs go-playground/validator into echo.
type FormValidator struct {
	validate *validator.Validate
}

func New() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("colorcode", colorCode)

	return &FormValidator{validate: v}
}

func (fv *FormValidator) Validate(i interface{}) error {
	return fv.validate.Struct(i)
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return !field.IsZero()
	}
	return strings.TrimSpace(field.String()) != ""
}

func colorCode(fl validator.FieldLevel) bool {
	return colorCodeRegex.MatchString(fl.Field().String())
}

// FieldErrors maps form field names to a readable message. It returns nil
// when err carries no field-level failures.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be blank"
	case "max":
		if fe.Field() == "displayOrder" || fe.Field() == "categoryId" {
			return "is too large"
		}
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "number":
		return "must be a whole number of zero or more"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "colorcode":
		return "must be a color code like #1a2b3c"
	default:
		return "is invalid"
	}
}
