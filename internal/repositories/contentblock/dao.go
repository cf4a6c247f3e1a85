package contentblock

import (
	"database/sql"
	"encoding/json"

	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/models"
)

const (
	contentBlocksTable   = "content_blocks"
	structuredCardsTable = "structured_cards"
)

// ContentBlockRow represents one ordered block on a page
type ContentBlockRow struct {
	PageID      int64                           `db:"page_id"`
	Type        string                          `db:"type"`
	ContentData database.JSONB[json.RawMessage] `db:"content_data"`
	OrderOnPage int                             `db:"order_on_page"`
}

// StructuredCardRow represents one ordered structured card on a page
type StructuredCardRow struct {
	PageID          int64                           `db:"page_id"`
	CardTitle       string                          `db:"card_title"`
	CardDescription string                          `db:"card_description"`
	Items           database.JSONB[json.RawMessage] `db:"items"`
	ImgSrc          sql.NullString                  `db:"img_src"`
	ImgAlt          sql.NullString                  `db:"img_alt"`
	OrderOnPage     int                             `db:"order_on_page"`
}

var (
	contentBlockStruct   = database.NewStruct(new(ContentBlockRow))
	structuredCardStruct = database.NewStruct(new(StructuredCardRow))
)

// FromStructuredCard converts a structured card to a database row
func FromStructuredCard(pageID int64, card models.StructuredCard, order int) *StructuredCardRow {
	return &StructuredCardRow{
		PageID:          pageID,
		CardTitle:       card.Title,
		CardDescription: card.Description,
		Items:           database.NewJSONB(card.ItemsJSON()),
		ImgSrc:          sql.NullString{String: card.ImgSrc, Valid: card.ImgSrc != ""},
		ImgAlt:          sql.NullString{String: card.ImgAlt, Valid: card.ImgAlt != ""},
		OrderOnPage:     order,
	}
}
