package seeder

import (
	"encoding/json"
	"fmt"

	"github.com/Ramsey-B/sprout/pkg/models"
)

type RowKind string

const (
	RowContentBlock   RowKind = "content_block"
	RowStructuredCard RowKind = "structured_card"
)

// Row is one persisted unit of page content. Content block rows carry
// BlockType and Data; structured card rows carry StructuredCard.
type Row struct {
	Kind           RowKind
	Order          int
	Card           string
	BlockType      models.BlockType
	Data           json.RawMessage
	StructuredCard models.StructuredCard
}

type textData struct {
	Text string `json:"text"`
}

type imageData struct {
	ImagePath string `json:"image_path"`
	AltText   string `json:"alt_text,omitempty"`
}

// FooterText renders a footer link target as the paragraph stored after a card.
func FooterText(footer string) string {
	return fmt.Sprintf(`Read more: <a href="%s">Explore further</a>`, footer)
}

// Flatten lays out the cards of a page as ordered rows. For every card it
// emits the heading, the image when there is one, the description blocks, the
// content (structured card rows for a collection, block rows otherwise) and
// the footer paragraph when there is one. Orders run from 0 across the whole
// page without gaps.
func Flatten(page models.Page) ([]Row, error) {
	f := &flattener{rows: []Row{}}

	for _, card := range page.Cards {
		f.card = card.Title

		if err := f.block(models.BlockHeadingH2, textData{Text: card.Title}); err != nil {
			return nil, err
		}

		if card.ImgSrc != "" {
			if err := f.block(models.BlockImage, imageData{ImagePath: card.ImgSrc, AltText: card.ImgAlt}); err != nil {
				return nil, err
			}
		}

		for _, block := range card.Description {
			if err := f.block(block.Type(), block); err != nil {
				return nil, err
			}
		}

		if card.Content.IsCollection() {
			for _, structured := range card.Content.Cards() {
				f.structuredCard(structured)
			}
		} else {
			for _, block := range card.Content.Blocks() {
				if err := f.block(block.Type(), block); err != nil {
					return nil, err
				}
			}
		}

		if card.Footer != "" {
			if err := f.block(models.BlockParagraph, textData{Text: FooterText(card.Footer)}); err != nil {
				return nil, err
			}
		}
	}

	return f.rows, nil
}

type flattener struct {
	rows []Row
	card string
}

func (f *flattener) block(blockType models.BlockType, v any) error {
	data, err := models.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s block of card %q: %w", blockType, f.card, err)
	}
	f.rows = append(f.rows, Row{
		Kind:      RowContentBlock,
		Order:     len(f.rows),
		Card:      f.card,
		BlockType: blockType,
		Data:      data,
	})
	return nil
}

func (f *flattener) structuredCard(card models.StructuredCard) {
	f.rows = append(f.rows, Row{
		Kind:           RowStructuredCard,
		Order:          len(f.rows),
		Card:           f.card,
		BlockType:      models.BlockStructuredCard,
		StructuredCard: card,
	})
}
