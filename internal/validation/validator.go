// Package validation holds the input contracts every domain operation is
// checked against before the store is touched. Each entity has one
// canonical shape, viewed as create, update, filter and order inputs.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("approval_status", func(fl validator.FieldLevel) bool {
		_, err := model.ParseApprovalStatus(fl.Field().String())
		return err == nil
	})

	v.RegisterCustomTypeFunc(unwrapNullable,
		Nullable[string]{},
		Nullable[float64]{},
		Nullable[int]{},
		Nullable[uint]{},
	)

	v.RegisterStructValidation(intUpdateRules, IntUpdate{})
	v.RegisterStructValidation(decimalUpdateRules, DecimalUpdate{})
	v.RegisterStructValidation(stringListUpdateRules, StringListUpdate{})
	v.RegisterStructValidation(approvalFilterRules, Filter[model.ApprovalStatus]{})

	return v
}

// rulesChecker is implemented by inputs with checks that struct tags cannot express.
type rulesChecker interface {
	rules() []apperrors.Issue
}

// Check validates input against its schema. It returns a
// *errors.ValidationError listing every failing field, or nil.
func Check(input interface{}) error {
	var issues []apperrors.Issue

	if err := validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stderrors.As(err, &fieldErrs) {
			return apperrors.Invalid("input", "shape", err.Error())
		}
		for _, fe := range fieldErrs {
			issues = append(issues, apperrors.Issue{
				Field:   fieldPath(fe.Namespace()),
				Rule:    fe.Tag(),
				Message: describe(fe),
			})
		}
	}

	if rc, ok := input.(rulesChecker); ok {
		issues = append(issues, rc.rules()...)
	}

	if len(issues) > 0 {
		return &apperrors.ValidationError{Issues: issues}
	}
	return nil
}

// ID checks that value is a canonical string identifier.
func ID(field, value string) error {
	if _, err := uuid.Parse(value); err != nil || len(value) != 36 {
		return apperrors.Invalid(field, "uuid", "must be a valid id")
	}
	return nil
}

// IntID checks that value is a usable auto-increment identifier.
func IntID(field string, value uint) error {
	if value == 0 {
		return apperrors.Invalid(field, "gt", "must be greater than 0")
	}
	return nil
}

// Email checks a bare email address, as used by lookups keyed on email.
func Email(field, value string) error {
	if err := validate.Var(value, "required,email"); err != nil {
		return apperrors.Invalid(field, "email", "must be a valid email address")
	}
	return nil
}

// fieldPath drops the leading type name, which for generic types carries
// bracketed, dotted type arguments.
func fieldPath(namespace string) string {
	depth := 0
	for i, r := range namespace {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '.':
			if depth == 0 {
				return namespace[i+1:]
			}
		}
	}
	return namespace
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid id"
	case "email":
		return "must be a valid email address"
	case "approval_status":
		names := make([]string, len(model.ApprovalStatuses))
		for i, s := range model.ApprovalStatuses {
			names[i] = string(s)
		}
		return "must be one of " + strings.Join(names, ", ")
	case "oneof":
		return "must be one of " + fe.Param()
	case "one_operation":
		return "must set exactly one operation"
	case "divide_by_zero":
		return "cannot divide by zero"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
	return "failed " + fe.Tag()
}
