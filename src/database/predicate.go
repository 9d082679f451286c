// src/database/predicate.go
package database

import (
	"fmt"
	"strings"

	"github.com/username/paybook/src/models"
)

// Predicate is a structured WHERE clause: field/operator/value triples that
// render to parameterized SQL. It exists so callers never splice values into
// query text themselves.
type Predicate struct {
	conds []condition
}

type condition struct {
	field string
	op    string
	value any
}

const (
	opEq           = "eq"
	opStageDone    = "stage_done"
	opStagePending = "stage_pending"
)

// Eq adds a "field = value" condition.
func (p Predicate) Eq(field string, value any) Predicate {
	p.conds = append(p.conds, condition{field: field, op: opEq, value: value})
	return p
}

// StageDone adds a condition matching raw rows the given stage has already
// processed.
func (p Predicate) StageDone(stage models.Stage) Predicate {
	p.conds = append(p.conds, condition{field: "stages", op: opStageDone, value: int64(stage)})
	return p
}

// StagePending adds a condition matching raw rows the given stage has not yet
// processed.
func (p Predicate) StagePending(stage models.Stage) Predicate {
	p.conds = append(p.conds, condition{field: "stages", op: opStagePending, value: int64(stage)})
	return p
}

// SQL renders the predicate to a WHERE clause body and its arguments. An
// empty predicate renders to "1=1" so it can always be appended after WHERE.
func (p Predicate) SQL() (string, []any) {
	if len(p.conds) == 0 {
		return "1=1", nil
	}

	parts := make([]string, 0, len(p.conds))
	args := make([]any, 0, len(p.conds))
	for _, c := range p.conds {
		switch c.op {
		case opStageDone:
			parts = append(parts, fmt.Sprintf("(%s & ?) != 0", c.field))
		case opStagePending:
			parts = append(parts, fmt.Sprintf("(%s & ?) = 0", c.field))
		default:
			parts = append(parts, fmt.Sprintf("%s = ?", c.field))
		}
		args = append(args, c.value)
	}
	return strings.Join(parts, " AND "), args
}

// Where starts a new predicate.
func Where() Predicate {
	return Predicate{}
}
