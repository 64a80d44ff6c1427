// Package inputval validates request input using waffle/pantry/validate.
//
// Define an input struct with validate tags, populate it from the request,
// and call Validate to get user-friendly error messages.
//
// Example:
//
//	type ViewportInput struct {
//	    Width  int `json:"width" validate:"min=1,max=10000" label:"Width"`
//	    Height int `json:"height" validate:"min=1,max=10000" label:"Height"`
//	}
//
//	if res := inputval.Validate(in); res.HasErrors() {
//	    jsonutil.BadRequest(w, res.First())
//	    return
//	}
package inputval

import (
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/strataesg/internal/app/dashboard/dispatch"
	"github.com/dalemusser/strataesg/internal/app/dashboard/navigation"
	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// Fields maps each failing field to its message.
func (r *Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		out[e.Field] = e.Message
	}
	return out
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	if len(r.Errors) == 0 {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	customValidator *validate.Validator
	validatorOnce   sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		customValidator = validate.New(validate.WithStopOnFirstError())

		// section: a known dashboard section
		customValidator.RegisterRuleFunc("section", func(value any) bool {
			if s, ok := value.(string); ok {
				return IsValidSection(s)
			}
			return false
		}, "section")

		// action: a declared interaction, or empty when a target is given
		customValidator.RegisterRuleFunc("action", func(value any) bool {
			switch s := value.(type) {
			case string:
				return s == "" || IsValidAction(s)
			case dispatch.Action:
				return s == "" || IsValidAction(string(s))
			}
			return false
		}, "action")
	})
	return customValidator
}

// Validate validates a struct and returns a Result with user-friendly errors.
//
// Supported rules (from pantry/validate): required, oneof, min, max.
// Custom rules registered here:
//   - section: a known dashboard section name
//   - action: a declared interaction action (empty allowed)
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	labels := getFieldLabels(s)
	kinds := getFieldKinds(s)

	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Message: formatMessage(label, e.Rule, e.Param, kinds[e.Field]),
			})
		}
	}
	return result
}

// fieldName is the json name of a field, or its Go name.
func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		parts := strings.Split(tag, ",")
		if parts[0] != "" && parts[0] != "-" {
			return parts[0]
		}
	}
	return f.Name
}

func structType(s any) (reflect.Type, bool) {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, false
	}
	return val.Type(), true
}

func getFieldLabels(s any) map[string]string {
	labels := make(map[string]string)
	typ, ok := structType(s)
	if !ok {
		return labels
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if label := f.Tag.Get("label"); label != "" {
			labels[fieldName(f)] = label
			labels[f.Name] = label
		}
	}
	return labels
}

func getFieldKinds(s any) map[string]reflect.Kind {
	kinds := make(map[string]reflect.Kind)
	typ, ok := structType(s)
	if !ok {
		return kinds
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		kinds[fieldName(f)] = f.Type.Kind()
		kinds[f.Name] = f.Type.Kind()
	}
	return kinds
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func formatMessage(label, rule, param string, kind reflect.Kind) string {
	switch rule {
	case "required":
		return label + " is required."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		if isNumeric(kind) {
			return label + " must be at least " + param + "."
		}
		return label + " must be at least " + param + " characters."
	case "max":
		if isNumeric(kind) {
			return label + " must be at most " + param + "."
		}
		return label + " must be at most " + param + " characters."
	case "section":
		return label + " must be one of: " + strings.Join(SectionNames(), ", ") + "."
	case "action":
		return label + " is not a known action."
	default:
		return label + " is invalid."
	}
}

// SectionNames lists the dashboard sections.
func SectionNames() []string {
	out := make([]string, len(navigation.Sections))
	for i, s := range navigation.Sections {
		out[i] = string(s)
	}
	return out
}

// IsValidSection reports whether s names a dashboard section.
func IsValidSection(s string) bool {
	_, ok := navigation.Parse(s)
	return ok
}

// IsValidAction reports whether s is a declared interaction action.
func IsValidAction(s string) bool {
	_, ok := dispatch.ParseAction(s)
	return ok
}
