// Package bind decodes request bodies and validates them with go-playground/validator
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "judolguard/internal/platform/errors"
	"judolguard/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes bounds a request body unless Options says otherwise
const DefaultMaxBytes = 4 << 20

// Options tunes ParseJSON
type Options struct {
	MaxBytes     int64 // 0 means unbounded
	AllowUnknown bool
	AllowEmpty   bool // an empty body yields the zero T, unvalidated
}

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator

	runIDRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

	// shorter than the stock english texts, {0} is the json field name
	messages = map[string]string{
		"min":    "{0} must be at least {1}",
		"max":    "{0} must be at most {1}",
		"run_id": "{0} must be 1 to 64 letters, digits, dots, dashes or underscores",
	}
)

func setup() {
	once.Do(func() {
		loc := en.New()
		trans, _ = ut.New(loc, loc).GetTranslator("en")

		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(validate, trans)
		_ = validate.RegisterValidation("run_id", func(fl validator.FieldLevel) bool {
			return runIDRe.MatchString(fl.Field().String())
		})
		for tag, text := range messages {
			translate(tag, text)
		}
	})
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func translate(tag, text string) {
	_ = validate.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON decodes one JSON value into T and validates it. Every failure is a
// JSON or Validation coded error
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero, dst T
	o := Options{MaxBytes: DefaultMaxBytes}
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	body := io.Reader(r.Body)
	if o.MaxBytes > 0 {
		body = io.LimitReader(body, o.MaxBytes)
	}
	dec := json.NewDecoder(body)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			if o.AllowEmpty {
				return zero, nil
			}
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate checks v's validate tags and reports the first failing field
func Validate(v any) error {
	setup()
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.New(perr.ErrorCodeValidation, msg), field)
}

// FieldAndMessage returns the first failing field and its translated message
func FieldAndMessage(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		setup()
		return verrs[0].Field(), verrs[0].Translate(trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
