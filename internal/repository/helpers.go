package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// HandleNotFound turns sql.ErrNoRows into (nil, nil). Find methods report a
// missing row that way and leave the NOT_FOUND decision to the service.
func HandleNotFound[T any](row *T, err error) (*T, error) {
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func rowsAffected(result sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// conditions builds an AND-ed WHERE clause with numbered placeholders.
type conditions struct {
	clauses []string
	args    []interface{}
}

// add appends clause, where %d is replaced by the placeholder number for arg.
func (c *conditions) add(clause string, arg interface{}) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

// next reserves the placeholder number for a trailing argument such as LIMIT.
func (c *conditions) next(arg interface{}) int {
	c.args = append(c.args, arg)
	return len(c.args)
}

func (c *conditions) String() string {
	return strings.Join(c.clauses, " AND ")
}
