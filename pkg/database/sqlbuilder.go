package database

import (
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"
)

var flavor = sqlbuilder.PostgreSQL

type InsertBuilder struct {
	*sqlbuilder.InsertBuilder
}

// NewInsertBuilder starts an insert into table, optionally naming its columns.
func NewInsertBuilder(table string, columns ...string) *InsertBuilder {
	ib := flavor.NewInsertBuilder()
	ib.InsertInto(table)
	if len(columns) > 0 {
		ib.Cols(columns...)
	}
	return &InsertBuilder{ib}
}

// OnConflictUpdate turns the insert into an upsert on target that copies
// columns from the incoming row. Call it after Values and before Returning.
func (b *InsertBuilder) OnConflictUpdate(target []string, columns ...string) *InsertBuilder {
	assignments := make([]string, 0, len(columns))
	for _, column := range columns {
		assignments = append(assignments, column+" = EXCLUDED."+column)
	}
	b.SQL(fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(target, ", "), strings.Join(assignments, ", ")))
	return b
}

func (b *InsertBuilder) OnConflictDoNothing() *InsertBuilder {
	b.SQL("ON CONFLICT DO NOTHING")
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.InsertBuilder.Returning(columns...)
	return b
}

// Struct renders inserts from a row type's db tags.
type Struct struct {
	*sqlbuilder.Struct
}

func NewStruct(v any) *Struct {
	return &Struct{sqlbuilder.NewStruct(v).For(flavor)}
}

func (s *Struct) InsertInto(table string, rows ...any) *InsertBuilder {
	return &InsertBuilder{s.Struct.InsertInto(table, rows...)}
}
