package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/visa/internal/apperror"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/primary"
)

// parseFilter splits "Field=value". Empty input is the zero filter.
func parseFilter(s string) (primary.Filter, error) {
	if strings.TrimSpace(s) == "" {
		return primary.Filter{}, nil
	}
	field, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(field) == "" {
		return primary.Filter{}, apperror.Newf(apperror.CodeInvalidField,
			"invalid filter %q. Expected format: Field=value", s)
	}
	return primary.Filter{Field: strings.TrimSpace(field), Value: value}, nil
}

type lastInspectionValue struct {
	date time.Time // zero clears the date
}

func parseLastInspection(s string) (lastInspectionValue, error) {
	if strings.TrimSpace(s) == "" {
		return lastInspectionValue{}, nil
	}
	t, err := establishment.ParseDate(s)
	if err != nil {
		return lastInspectionValue{}, apperror.Validation(map[string]string{
			"LastInspectionDate": fmt.Sprintf("%q is not a DD/MM/YYYY date", s),
		})
	}
	return lastInspectionValue{date: t}, nil
}

func oneOfHelp[T ~string](label string, set []T) string {
	return fmt.Sprintf("%s: %s", label, strings.Join(establishment.StringValues(set), " | "))
}

// ExitCode maps an error to the process exit status:
// 2 for storage failures, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, apperror.ErrStorage) {
		return 2
	}
	return 1
}
