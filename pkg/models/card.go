package models

import (
	"encoding/json"
)

// StructuredCard bundles a title, description, image and opaque items.
type StructuredCard struct {
	Title       string
	Description string
	ImgSrc      string
	ImgAlt      string
	Items       json.RawMessage
	Footer      string
}

// ItemsJSON returns the card's items, or [] when it has none.
func (c StructuredCard) ItemsJSON() json.RawMessage {
	if len(c.Items) == 0 {
		return emptyArray
	}
	return c.Items
}

func (c StructuredCard) MarshalJSON() ([]byte, error) {
	return Marshal(struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		ImgSrc      string          `json:"img_src,omitempty"`
		ImgAlt      string          `json:"img_alt,omitempty"`
		Items       json.RawMessage `json:"items"`
		Footer      string          `json:"footer,omitempty"`
	}{c.Title, c.Description, c.ImgSrc, c.ImgAlt, c.ItemsJSON(), c.Footer})
}

func StructuredCardFromMap(m map[string]any) StructuredCard {
	return StructuredCard{
		Title:       String(m["title"]),
		Description: String(m["description"]),
		ImgSrc:      String(m["img_src"]),
		ImgAlt:      String(m["img_alt"]),
		Items:       RawJSON(m["items"]),
		Footer:      String(m["footer"]),
	}
}

func StructuredCardsFromSlice(items []any) []StructuredCard {
	cards := make([]StructuredCard, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			cards = append(cards, StructuredCardFromMap(m))
		}
	}
	return cards
}

// CardContent is either an ordered block sequence or a structured card
// collection.
type CardContent struct {
	blocks     []ContentBlock
	cards      []StructuredCard
	collection bool
}

func BlockContent(blocks ...ContentBlock) CardContent {
	return CardContent{blocks: blocks}
}

func CollectionContent(cards ...StructuredCard) CardContent {
	return CardContent{cards: cards, collection: true}
}

func (c CardContent) IsCollection() bool {
	return c.collection
}

func (c CardContent) Blocks() []ContentBlock {
	return c.blocks
}

func (c CardContent) Cards() []StructuredCard {
	return c.cards
}

func (c CardContent) MarshalJSON() ([]byte, error) {
	if c.collection {
		return StructuredCardBlock{Cards: c.cards, Collection: true}.MarshalJSON()
	}
	blocks := c.blocks
	if blocks == nil {
		blocks = []ContentBlock{}
	}
	return Marshal(blocks)
}

// Card is one logical content unit of a page before it is flattened into rows.
type Card struct {
	Title       string
	Description []ContentBlock
	Content     CardContent
	ImgSrc      string
	ImgAlt      string
	Footer      string
}

func (c Card) MarshalJSON() ([]byte, error) {
	description := c.Description
	if description == nil {
		description = []ContentBlock{}
	}
	return Marshal(struct {
		Title       string         `json:"title"`
		Description []ContentBlock `json:"description"`
		Content     CardContent    `json:"content"`
		ImgSrc      string         `json:"img_src,omitempty"`
		ImgAlt      string         `json:"img_alt,omitempty"`
		Footer      string         `json:"footer,omitempty"`
	}{c.Title, description, c.Content, c.ImgSrc, c.ImgAlt, c.Footer})
}
