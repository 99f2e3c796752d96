package validation

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	apperrors "volunteerhub/internal/errors"
	"volunteerhub/internal/model"
)

const (
	// DefaultTake is the page size used when FindManyArgs.Take is unset.
	DefaultTake = 50
	// MaxTake bounds a single page.
	MaxTake = 100
)

// OrderBy orders results by one sortable column.
type OrderBy struct {
	Field string           `json:"field" validate:"required"`
	Sort  model.SortOrder  `json:"sort,omitempty" validate:"omitempty,oneof=asc desc"`
	Nulls model.NullsOrder `json:"nulls,omitempty" validate:"omitempty,oneof=first last"`
}

// Desc reports whether the ordering is descending.
func (o OrderBy) Desc() bool {
	return o.Sort == model.SortDesc
}

// FindManyArgs is the list view shared by every entity.
type FindManyArgs[W any] struct {
	Where   *W        `json:"where,omitempty"`
	OrderBy []OrderBy `json:"orderBy,omitempty" validate:"omitempty,dive"`
	Take    *int      `json:"take,omitempty" validate:"omitempty,min=1,max=100"`
	Skip    int       `json:"skip,omitempty" validate:"gte=0"`
}

// Limit returns the page size.
func (a FindManyArgs[W]) Limit() int {
	if a.Take == nil {
		return DefaultTake
	}
	return *a.Take
}

// Sortable lists the columns an entity can be ordered by, keyed by their
// JSON name and mapped to the column name.
type Sortable map[string]string

func (s Sortable) issues(orderBy []OrderBy) []apperrors.Issue {
	var issues []apperrors.Issue
	for i, o := range orderBy {
		if o.Field == "" {
			continue
		}
		if _, ok := s[o.Field]; !ok {
			issues = append(issues, apperrors.Issue{
				Field:   fmt.Sprintf("orderBy[%d].field", i),
				Rule:    "oneof",
				Message: "must be one of " + s.names(),
			})
		}
	}
	return issues
}

func (s Sortable) names() string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

// Column returns the column name for a sortable JSON field.
func (s Sortable) Column(field string) string {
	return s[field]
}

// CheckFindMany validates list arguments and restricts orderBy to columns.
func CheckFindMany[W any](args *FindManyArgs[W], columns Sortable) error {
	var issues []apperrors.Issue
	if err := Check(args); err != nil {
		var verr *apperrors.ValidationError
		if !stderrors.As(err, &verr) {
			return err
		}
		issues = append(issues, verr.Issues...)
	}
	issues = append(issues, columns.issues(args.OrderBy)...)
	if len(issues) > 0 {
		return &apperrors.ValidationError{Issues: issues}
	}
	return nil
}
