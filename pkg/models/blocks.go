package models

import (
	"encoding/json"
)

type BlockType string

const (
	BlockParagraph      BlockType = "paragraph"
	BlockList           BlockType = "list"
	BlockHeadingH2      BlockType = "heading_h2"
	BlockImage          BlockType = "image"
	BlockStructuredCard BlockType = "structured_card"
)

// ContentBlock is one typed unit of page content. The set of implementations
// is closed to this package.
type ContentBlock interface {
	Type() BlockType
	contentBlock()
}

type Paragraph struct {
	Text string
}

type List struct {
	Items json.RawMessage
}

type HeadingH2 struct {
	Text string
}

type Image struct {
	ImagePath string
	AltText   string
}

// StructuredCardBlock holds either a single card or, when Collection is set,
// an ordered collection of cards.
type StructuredCardBlock struct {
	Cards      []StructuredCard
	Collection bool
}

// RawBlock carries a block of an unrecognised type through unchanged.
type RawBlock struct {
	BlockType BlockType
	Data      json.RawMessage
}

func (Paragraph) Type() BlockType           { return BlockParagraph }
func (List) Type() BlockType                { return BlockList }
func (HeadingH2) Type() BlockType           { return BlockHeadingH2 }
func (Image) Type() BlockType               { return BlockImage }
func (StructuredCardBlock) Type() BlockType { return BlockStructuredCard }
func (b RawBlock) Type() BlockType          { return b.BlockType }

func (Paragraph) contentBlock()           {}
func (List) contentBlock()                {}
func (HeadingH2) contentBlock()           {}
func (Image) contentBlock()               {}
func (StructuredCardBlock) contentBlock() {}
func (RawBlock) contentBlock()            {}

func (b Paragraph) MarshalJSON() ([]byte, error) {
	return Marshal(struct {
		Type BlockType `json:"type"`
		Text string    `json:"text"`
	}{BlockParagraph, b.Text})
}

func (b List) MarshalJSON() ([]byte, error) {
	items := b.Items
	if len(items) == 0 {
		items = emptyArray
	}
	return Marshal(struct {
		Type  BlockType       `json:"type"`
		Items json.RawMessage `json:"items"`
	}{BlockList, items})
}

func (b HeadingH2) MarshalJSON() ([]byte, error) {
	return Marshal(struct {
		Type BlockType `json:"type"`
		Text string    `json:"text"`
	}{BlockHeadingH2, b.Text})
}

func (b Image) MarshalJSON() ([]byte, error) {
	return Marshal(struct {
		Type      BlockType `json:"type"`
		ImagePath string    `json:"image_path"`
		AltText   string    `json:"alt_text"`
	}{BlockImage, b.ImagePath, b.AltText})
}

func (b StructuredCardBlock) MarshalJSON() ([]byte, error) {
	var payload any
	switch {
	case b.Collection:
		cards := b.Cards
		if cards == nil {
			cards = []StructuredCard{}
		}
		payload = cards
	case len(b.Cards) > 0:
		payload = b.Cards[0]
	default:
		payload = StructuredCard{}
	}
	return Marshal(struct {
		Type           BlockType `json:"type"`
		StructuredCard any       `json:"structured_card"`
	}{BlockStructuredCard, payload})
}

func (b RawBlock) MarshalJSON() ([]byte, error) {
	if len(b.Data) > 0 {
		return b.Data, nil
	}
	return Marshal(map[string]BlockType{"type": b.BlockType})
}

// BlockFromMap decodes one block in its {"type": ...} wire shape. Missing
// fields take their zero values; unknown types become a RawBlock.
func BlockFromMap(m map[string]any) ContentBlock {
	blockType := BlockType(String(m["type"]))
	switch blockType {
	case BlockParagraph:
		return Paragraph{Text: String(m["text"])}
	case BlockHeadingH2:
		return HeadingH2{Text: String(m["text"])}
	case BlockList:
		return List{Items: RawJSON(m["items"])}
	case BlockImage:
		return Image{ImagePath: String(m["image_path"]), AltText: String(m["alt_text"])}
	case BlockStructuredCard:
		switch cards := m["structured_card"].(type) {
		case []any:
			return StructuredCardBlock{Cards: StructuredCardsFromSlice(cards), Collection: true}
		case map[string]any:
			return StructuredCardBlock{Cards: []StructuredCard{StructuredCardFromMap(cards)}}
		}
	}
	return RawBlock{BlockType: blockType, Data: RawJSON(m)}
}

// BlocksFromSlice decodes every object in items as a block, skipping anything
// that is not an object.
func BlocksFromSlice(items []any) []ContentBlock {
	blocks := make([]ContentBlock, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			blocks = append(blocks, BlockFromMap(m))
		}
	}
	return blocks
}
