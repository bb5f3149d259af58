// Package validator wraps go-playground/validator: struct tags drive the
// rules, messages use JSON field names and the EN translation.
package validator

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	playground "github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

// Rule is a custom validation registered under a tag.
type Rule struct {
	Tag  string
	Func playground.Func
}

func Validate(value any, rules ...Rule) error {
	return ValidateCtx(context.Background(), value, "dive", "", rules...)
}

func ValidateCtx(ctx context.Context, value any, tag string, fieldName string, rules ...Rule) error {
	validate, translator := newValidator(rules...)

	var err error
	if isStruct(value) {
		err = validate.StructCtx(ctx, value)
	} else {
		err = validate.VarCtx(ctx, value, tag)
	}
	if err != nil {
		validationErrs := playground.ValidationErrors{}
		if errors.As(err, &validationErrs) {
			return formatError(validationErrs, translator, fieldName)
		}
		panic(err)
	}
	return nil
}

func isStruct(value any) bool {
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

func newValidator(rules ...Rule) (*playground.Validate, ut.Translator) {
	validate := playground.New()

	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(errors.PrefixError(err, "translator was not registered"))
	}

	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.Tag, rule.Func); err != nil {
			panic(err)
		}
	}

	// Use JSON field names in error messages
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if field.Anonymous {
			return "__nested__"
		}
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	return validate, translator
}

func formatError(validationErrs playground.ValidationErrors, translator ut.Translator, fieldName string) error {
	out := errors.NewMultiError()
	for _, fieldErr := range validationErrs {
		namespace := cleanNamespace(fieldErr.Namespace(), fieldName)
		message := strings.TrimSpace(strings.TrimPrefix(fieldErr.Translate(translator), fieldErr.Field()))
		if namespace == "" {
			out.Append(errors.New(message))
		} else {
			out.Append(errors.Errorf(`"%s" %s`, namespace, message))
		}
	}
	return out.ErrorOrNil()
}

// cleanNamespace strips the anonymous root of the Var-based validation
// and prepends the optional logical field name.
func cleanNamespace(namespace, fieldName string) string {
	parts := strings.Split(namespace, ".")
	var kept []string
	for i, part := range parts {
		if i == 0 || part == "__nested__" {
			continue
		}
		kept = append(kept, part)
	}
	out := strings.Join(kept, ".")
	if fieldName != "" && out != "" {
		return fieldName + "." + out
	}
	if fieldName != "" {
		return fieldName
	}
	return out
}
