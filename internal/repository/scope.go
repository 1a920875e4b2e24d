package repository

import (
	"strings"
)

// activeQuery builds SELECT statements over a soft-deletable table. The
// is_active predicate is emitted unconditionally, so no read path can forget it.
type activeQuery struct {
	selectFrom string
	qualifier  string
	conds      []string
	args       []any
	orderBy    string
	limit      int
}

// selectActive starts a query. qualifier is the table alias used for the
// active-row predicate ("p" for "products p"), or empty.
func selectActive(selectFrom, qualifier string) *activeQuery {
	return &activeQuery{selectFrom: selectFrom, qualifier: qualifier}
}

func (q *activeQuery) Where(cond string, args ...any) *activeQuery {
	q.conds = append(q.conds, cond)
	q.args = append(q.args, args...)
	return q
}

func (q *activeQuery) OrderBy(clause string) *activeQuery {
	q.orderBy = clause
	return q
}

func (q *activeQuery) Limit(n int) *activeQuery {
	q.limit = n
	return q
}

// Build renders the statement with ? placeholders and its arguments.
func (q *activeQuery) Build() (string, []any) {
	var b strings.Builder
	b.WriteString(q.selectFrom)
	b.WriteString(" WHERE ")
	b.WriteString(activePredicate(q.qualifier))
	for _, c := range q.conds {
		b.WriteString(" AND ")
		b.WriteString(c)
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.orderBy)
	}
	args := append([]any{}, q.args...)
	if q.limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, q.limit)
	}
	return b.String(), args
}

func activePredicate(qualifier string) string {
	if qualifier == "" {
		return "is_active = TRUE"
	}
	return qualifier + ".is_active = TRUE"
}

// containsPattern turns user input into a LIKE pattern matching it anywhere,
// with LIKE metacharacters escaped. Use with ESCAPE '\'.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
