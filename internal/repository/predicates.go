package repository

import "strings"

// Predicates accumulates optional WHERE clauses and their bind parameters,
// keeping dynamically composed list queries fully parameterized.
type Predicates struct {
	clauses []string
	args    []any
}

// Add appends one clause (with ? placeholders) and its arguments.
func (p *Predicates) Add(clause string, args ...any) {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
}

// Where renders " WHERE a AND b", or "" when no clause was added.
func (p *Predicates) Where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// Args returns the accumulated bind parameters in clause order.
func (p *Predicates) Args() []any {
	return p.args
}
