package relay

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

// FieldsError lists request fields that failed validation, keyed by their
// JSON path.
type FieldsError struct {
	Fields map[string]string
}

func (f *FieldsError) Error() string {
	return "invalid request fields"
}

// Validator parses request bodies and validates them with english error
// messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, trans: trans}
}

// ParseAndValidate decodes the body into req and validates it. A body that
// does not decode is a 400 fiber error; failed rules are a *FieldsError.
func (v *Validator) ParseAndValidate(c *fiber.Ctx, req any) error {
	if len(c.Body()) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Missing request body")
	}
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}

	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Request body is not valid")
	}

	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[jsonPath(e.Namespace())] = e.Translate(v.trans)
	}
	return &FieldsError{Fields: fields}
}

// jsonPath drops the root struct name: "chatRequest.messages[0].role"
// becomes "messages[0].role".
func jsonPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
