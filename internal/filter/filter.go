// Package filter selects extracted units with expr-lang predicates written
// against core.Unit fields, e.g. `Speed > 50 && "para" in Specialities` or
// `any(Weapons, .Penetration >= 18)`.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/warnodata/extractor/pkg/core"
)

// Filter is a compiled unit predicate. The zero Filter and a nil *Filter
// match every unit.
type Filter struct {
	source  string
	program *vm.Program
}

// Compile checks source against the unit fields. An empty source yields a
// filter that matches everything.
func Compile(source string) (*Filter, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return &Filter{}, nil
	}
	prog, err := expr.Compile(source, expr.Env(core.Unit{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", source, err)
	}
	return &Filter{source: source, program: prog}, nil
}

// String returns the predicate source.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match evaluates the predicate for one unit.
func (f *Filter) Match(unit core.Unit) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	out, err := vm.Run(f.program, unit)
	if err != nil {
		return false, fmt.Errorf("filter %s: %w", unit.DescriptorName, err)
	}
	return out.(bool), nil
}

// Apply keeps the units that match, preserving order.
func (f *Filter) Apply(units []core.Unit) ([]core.Unit, error) {
	if f == nil || f.program == nil {
		return units, nil
	}
	kept := make([]core.Unit, 0, len(units))
	for _, u := range units {
		ok, err := f.Match(u)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, u)
		}
	}
	return kept, nil
}
