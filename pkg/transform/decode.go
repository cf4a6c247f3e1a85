package transform

import (
	"strings"

	"github.com/Ramsey-B/sprout/pkg/models"
	"github.com/Ramsey-B/sprout/pkg/search"
)

// DecodeCards reads records that already follow the canonical card shape.
// Anything that is not an object is skipped.
func DecodeCards(records []any) []models.Card {
	cards := make([]models.Card, 0, len(records))
	for _, record := range objects(records) {
		cards = append(cards, decodeCard(record))
	}
	return cards
}

func decodeCard(record map[string]any) models.Card {
	return models.Card{
		Title:       models.String(record["title"]),
		Description: blocks(record["description"]),
		Content:     content(record["content"]),
		ImgSrc:      models.String(record["img_src"]),
		ImgAlt:      models.String(record["img_alt"]),
		Footer:      models.String(record["footer"]),
	}
}

// blocks accepts a block array, a single block, or bare text.
func blocks(v any) []models.ContentBlock {
	switch value := v.(type) {
	case []any:
		return models.BlocksFromSlice(value)
	case map[string]any:
		return []models.ContentBlock{models.BlockFromMap(value)}
	case string:
		if value != "" {
			return []models.ContentBlock{models.Paragraph{Text: value}}
		}
	}
	return []models.ContentBlock{}
}

// content recognises the {type: structured_card, structured_card: [...]}
// collection shape; everything else is read as blocks.
func content(v any) models.CardContent {
	if m, ok := v.(map[string]any); ok && models.BlockType(models.String(m["type"])) == models.BlockStructuredCard {
		switch cards := m["structured_card"].(type) {
		case []any:
			return models.CollectionContent(models.StructuredCardsFromSlice(cards)...)
		case map[string]any:
			return models.CollectionContent(models.StructuredCardFromMap(cards))
		}
	}
	return models.BlockContent(blocks(v)...)
}

// text returns v itself when it is a string, otherwise the text of every
// paragraph block found inside it, separated by blank lines.
func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	parts := []string{}
	for _, paragraph := range search.SearchByKeyValue(v, "type", string(models.BlockParagraph)) {
		if s := models.String(paragraph["text"]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n")
}

func objects(records []any) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, record := range records {
		if m, ok := record.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// firstString returns the first non-empty string among the named fields.
func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := models.String(record[key]); s != "" {
			return s
		}
	}
	return ""
}
