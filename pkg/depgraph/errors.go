package depgraph

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/errcode"
)

// CyclicDependencyError is returned when relations depend on each other
// in a loop and cannot be ordered.
func CyclicDependencyError(nodes []string) error {
	list := strings.Join(nodes, ", ")
	msg := `Relations form a dependency cycle and cannot be ordered

<em>Relations involved:</em>
  %s`

	return &gn.Error{
		Code: errcode.CyclicDependencyError,
		Msg:  msg,
		Vars: []any{list},
		Err:  fmt.Errorf("dependency cycle among %s", list),
	}
}

// AmbiguousNameError is returned when an unqualified name matches
// relations in more than one schema.
func AmbiguousNameError(name string, matches []string) error {
	list := strings.Join(matches, ", ")
	msg := "Name <em>%s</em> is ambiguous, use one of: %s"

	return &gn.Error{
		Code: errcode.AmbiguousNameError,
		Msg:  msg,
		Vars: []any{name, list},
		Err:  fmt.Errorf("name %q matches %s", name, list),
	}
}
