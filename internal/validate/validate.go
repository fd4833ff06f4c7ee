package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"famigliapp/internal/storage"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// пользовательские теги
	dateTag     = "date"
	notBlankTag = "notblank"
	weekdayTag  = "weekday"
)

func init() {
	validate = validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// в ошибках: имена из json-тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(dateTag, dateValidation)
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = validate.RegisterValidation(weekdayTag, weekdayValidation)
	validate.RegisterStructValidation(shiftsUpdateStructValidation, storage.ShiftsUpdate{})

	registerCustomTranslations(map[string]string{
		dateTag:       "{0} must be a date in YYYY-MM-DD format",
		notBlankTag:   "{0} cannot be blank",
		weekdayTag:    "{0} must be a weekday number from 0 (Sunday) to 6",
		"range_order": "{0} must not be before from",
	})
}

func registerCustomTranslations(texts map[string]string) {
	for tag, text := range texts {
		_ = validate.RegisterTranslation(tag, translator,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, err := t.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return msg
			},
		)
	}
}

func dateValidation(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return storage.Date(fl.Field().String()).Valid()
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

func weekdayValidation(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		d := fl.Field().Int()
		return d >= 0 && d <= 6
	}
	return false
}

func shiftsUpdateStructValidation(sl validator.StructLevel) {
	upd, ok := sl.Current().Interface().(storage.ShiftsUpdate)
	if !ok || !upd.From.Valid() || !upd.To.Valid() {
		return
	}
	if upd.To.Before(upd.From) {
		sl.ReportError(upd.To, "to", "To", "range_order", "")
	}
}

// FieldError описывает ошибку конкретного поля запроса.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Errors: список ошибок валидации; отдаётся клиенту как есть.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Error)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct проверяет v по validate-тегам. Ошибки полей возвращаются как Errors.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Error: fe.Translate(translator)})
	}
	return out
}

// fieldPath убирает имя корневой структуры из пространства имён: "PollForm.options[1]" → "options[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
