package establishment

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/visa/internal/apperror"
)

var activityCodeRegex = regexp.MustCompile(`^\d{4}-\d/\d{2}$`)

// Fields is the validated view of an establishment's writable columns.
// Everything is text, exactly as it will be stored.
type Fields struct {
	Name                 string `validate:"required"`
	TaxID                string `validate:"required"`
	Group                string `validate:"omitempty,group"`
	ActivityCode         string `validate:"omitempty,activitycode"`
	RiskGrade            string `validate:"omitempty,riskgrade"`
	ArchitecturalProject string `validate:"omitempty,project"`
	LastInspectionDate   string `validate:"omitempty,ddmmyyyy"`
	Reinspection         string `validate:"omitempty,oneof=Sim Não"`
	PermitStatus         string `validate:"omitempty,permit"`
	Reason               string `validate:"omitempty,reason"`
	Status               string `validate:"omitempty,status"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	rules := map[string]validator.Func{
		"activitycode": func(fl validator.FieldLevel) bool {
			return ValidActivityCode(fl.Field().String())
		},
		"ddmmyyyy": func(fl validator.FieldLevel) bool {
			_, err := ParseDate(fl.Field().String())
			return err == nil
		},
		"group":     enumRule[Group](),
		"riskgrade": enumRule[RiskGrade](),
		"project":   enumRule[ArchitecturalProject](),
		"permit":    enumRule[PermitStatus](),
		"reason":    enumRule[Reason](),
		"status":    enumRule[Status](),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	return v
}

type enum interface {
	~string
	Valid() bool
}

func enumRule[T enum]() validator.Func {
	return func(fl validator.FieldLevel) bool {
		return T(fl.Field().String()).Valid()
	}
}

// ValidActivityCode reports whether code matches the dddd-d/dd layout.
func ValidActivityCode(code string) bool {
	return activityCodeRegex.MatchString(code)
}

// Normalize trims surrounding whitespace from every field.
func (f Fields) Normalize() Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.TaxID = strings.TrimSpace(f.TaxID)
	f.Group = strings.TrimSpace(f.Group)
	f.ActivityCode = strings.TrimSpace(f.ActivityCode)
	f.RiskGrade = strings.TrimSpace(f.RiskGrade)
	f.ArchitecturalProject = strings.TrimSpace(f.ArchitecturalProject)
	f.LastInspectionDate = strings.TrimSpace(f.LastInspectionDate)
	f.Reinspection = strings.TrimSpace(f.Reinspection)
	f.PermitStatus = strings.TrimSpace(f.PermitStatus)
	f.Reason = strings.TrimSpace(f.Reason)
	f.Status = strings.TrimSpace(f.Status)
	return f
}

// Validate checks required fields, the activity code layout, the closed value
// sets (status included) and the last inspection date. Returns an apperror validation error
// listing every offending field.
func Validate(f Fields) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Wrap(err, apperror.CodeValidation, "validation failed")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return apperror.Validation(fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "activitycode":
		return "must use the format dddd-d/dd (e.g. 5611-2/01)"
	case "ddmmyyyy":
		return "must be a date in DD/MM/YYYY"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "group":
		return oneOf(Groups)
	case "riskgrade":
		return oneOf(RiskGrades)
	case "project":
		return oneOf(ArchitecturalProjects)
	case "permit":
		return oneOf(PermitStatuses)
	case "reason":
		return oneOf(Reasons)
	case "status":
		return oneOf(Statuses)
	default:
		return "is invalid"
	}
}

func oneOf[T ~string](set []T) string {
	return "must be one of: " + strings.Join(StringValues(set), ", ")
}
