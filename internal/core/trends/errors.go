package trends

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData is returned when the fact table has no qualifying rows, either for
// the bounds lookup or for the built aggregation query.
var ErrNoData = errors.New("No data found for the specified period")

// ErrNoDateRange is returned when the fact table is empty and no explicit date
// range was given, so no range can be resolved.
var ErrNoDateRange = errors.New("No data available in the database")

// ConfigurationError reports an invalid analysis request. It is raised at
// construction time and is never normalized into a Result envelope.
type ConfigurationError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid %s: %q (must be one of %s)", e.Field, e.Value, strings.Join(e.Allowed, ", "))
}
