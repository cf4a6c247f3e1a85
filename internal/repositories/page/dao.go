package page

import (
	"database/sql"

	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/models"
)

const (
	pagesTable      = "pages"
	pageTopicsTable = "page_topics"
)

// PageRow represents the insertable columns of a page
type PageRow struct {
	Slug            sql.NullString `db:"slug"`
	Title           sql.NullString `db:"title"`
	MetaDescription sql.NullString `db:"meta_description"`
	Status          sql.NullString `db:"status"`
	PublishedAt     sql.NullTime   `db:"published_at"`
}

var pageStruct = database.NewStruct(new(PageRow))

// FromPage converts a canonical page to a database row
func FromPage(p models.Page) *PageRow {
	return &PageRow{
		Slug:            sql.NullString{String: p.Slug, Valid: p.Slug != ""},
		Title:           sql.NullString{String: p.Title, Valid: true},
		MetaDescription: sql.NullString{String: p.MetaDescription, Valid: p.MetaDescription != ""},
		Status:          sql.NullString{String: string(p.Status), Valid: p.Status != ""},
		PublishedAt:     sql.NullTime{Time: p.PublishedAt, Valid: !p.PublishedAt.IsZero()},
	}
}
