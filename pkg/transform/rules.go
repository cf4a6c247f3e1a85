package transform

import (
	"github.com/Ramsey-B/sprout/pkg/merge"
	"github.com/Ramsey-B/sprout/pkg/models"
	"github.com/Ramsey-B/sprout/pkg/search"
)

const (
	cultureTitle = "Culture and Traditions of Georgia"
	cultureIntro = "Explore the rich culture and traditions of Georgia, from its ancient history to modern practices."
	guideTitle   = "Georgia Travel Guide"
	guideIntro   = "Practical guidance for planning your journey through Georgia."
)

// wrap places each structured card in its own structured_card block under one
// synthetic page card, so every card is stored as a content block with its
// footer.
func wrap(title, intro string, cards []models.StructuredCard) []models.Card {
	blocks := make([]models.ContentBlock, 0, len(cards))
	for _, card := range cards {
		blocks = append(blocks, models.StructuredCardBlock{Cards: []models.StructuredCard{card}})
	}
	return []models.Card{{
		Title:       title,
		Description: []models.ContentBlock{models.Paragraph{Text: intro}},
		Content:     models.BlockContent(blocks...),
	}}
}

// General merges the description-bearing and content-bearing views of each
// titled record into one structured card. Records carrying neither field still
// contribute their title and image.
func General(records []any) []models.Card {
	described := []merge.Record{}
	contented := []merge.Record{}
	for _, record := range objects(records) {
		_, hasDescription := record["description"]
		_, hasContent := record["content"]
		if hasDescription {
			described = append(described, projectGeneral(record, "description"))
		}
		if hasContent || !hasDescription {
			contented = append(contented, projectGeneral(record, "content"))
		}
	}

	merged := merge.MergeByKey(described, contented, "title")
	cards := make([]models.StructuredCard, 0, len(merged))
	for _, record := range merged {
		cards = append(cards, models.StructuredCard{
			Title:       models.String(record["title"]),
			Description: models.String(record["content"]),
			ImgSrc:      models.String(record["img_src"]),
			ImgAlt:      models.String(record["img_alt"]),
			Items:       models.RawJSON(record["items"]),
			Footer:      models.String(record["footer"]),
		})
	}
	return wrap(cultureTitle, cultureIntro, cards)
}

// projectGeneral keeps only the fields the record actually has, so that the
// merge never overwrites a value with an absent one.
func projectGeneral(record map[string]any, field string) merge.Record {
	projected := merge.Record{}
	if title, ok := record["title"]; ok {
		projected["title"] = title
	}

	source := record[field]
	if s := text(source); s != "" {
		projected["content"] = s
	}
	if items := search.FindTypedBlock(source, string(models.BlockList), "items"); items != nil {
		projected["items"] = items
	}

	for _, key := range []string{"img_src", "img_alt", "footer"} {
		if value, ok := record[key]; ok {
			projected[key] = value
		}
	}
	return projected
}

// Culture maps each record to exactly one structured card.
func Culture(records []any) []models.Card {
	cards := []models.StructuredCard{}
	for _, record := range objects(records) {
		cards = append(cards, models.StructuredCard{
			Title:       models.String(record["title"]),
			Description: text(record["content"]),
			ImgSrc:      models.String(record["img_src"]),
			ImgAlt:      models.String(record["img_alt"]),
			Items:       models.RawJSON(record["items"]),
			Footer:      models.String(record["footer"]),
		})
	}
	return wrap(cultureTitle, cultureIntro, cards)
}

// Guide maps each guide entry to one structured card. Guide sources name
// their fields differently from every other topic.
func Guide(records []any) []models.Card {
	cards := []models.StructuredCard{}
	for _, record := range objects(records) {
		cards = append(cards, models.StructuredCard{
			Title:       models.String(record["name"]),
			Description: text(record["intro"]),
			ImgSrc:      models.String(record["imageSrc"]),
			ImgAlt:      models.String(record["imageAlt"]),
			Items:       models.RawJSON(record["description"]),
			Footer:      models.String(record["footer"]),
		})
	}
	return wrap(guideTitle, guideIntro, cards)
}

// Cuisine lifts the nested page title and intro onto the card and turns each
// page section into a structured card block. The nested page is not carried
// over.
func Cuisine(records []any) []models.Card {
	cards := make([]models.Card, 0, len(records))
	for _, record := range objects(records) {
		page, _ := record["page"].(map[string]any)

		card := models.Card{
			Title:  firstString(page, "title"),
			ImgSrc: models.String(record["img_src"]),
			ImgAlt: models.String(record["img_alt"]),
			Footer: models.String(record["footer"]),
		}
		if card.Title == "" {
			card.Title = models.String(record["title"])
		}

		if intro := models.String(page["intro"]); intro != "" {
			card.Description = []models.ContentBlock{models.Paragraph{Text: intro}}
		} else {
			card.Description = blocks(record["description"])
		}

		if sections, ok := page["sections"].([]any); ok {
			sectionBlocks := make([]models.ContentBlock, 0, len(sections))
			for _, section := range objects(sections) {
				sectionBlocks = append(sectionBlocks, models.StructuredCardBlock{
					Cards: []models.StructuredCard{cuisineSection(section)},
				})
			}
			card.Content = models.BlockContent(sectionBlocks...)
		} else {
			card.Content = content(record["content"])
		}

		cards = append(cards, card)
	}
	return cards
}

func cuisineSection(section map[string]any) models.StructuredCard {
	card := models.StructuredCard{
		Title:       models.String(section["title"]),
		Description: firstString(section, "description", "intro"),
		ImgSrc:      models.String(section["img_src"]),
		ImgAlt:      models.String(section["img_alt"]),
		Items:       models.RawJSON(section["items"]),
		Footer:      models.String(section["footer"]),
	}

	dishes, hasDishes := section["dishes"]
	venues, hasVenues := section["venues"]
	switch {
	case hasDishes && hasVenues:
		card.Items = models.RawJSON(map[string]any{
			"dishes": tagEach(dishes, "dish"),
			"venues": tagEach(venues, "venue"),
		})
	case hasDishes || hasVenues:
		// a lone list stays as it is, next to any items the section had
		items := map[string]any{}
		if hasDishes {
			items["dishes"] = dishes
		} else {
			items["venues"] = venues
		}
		if existing, ok := section["items"]; ok {
			items["items"] = existing
		}
		card.Items = models.RawJSON(items)
	}
	return card
}

// tagEach wraps every element of a list as {key: element}.
func tagEach(v any, key string) []any {
	list, _ := v.([]any)
	out := make([]any, 0, len(list))
	for _, element := range list {
		out = append(out, map[string]any{key: element})
	}
	return out
}

// Adventures renames the adventure source fields to the canonical card shape
// and turns the location into a content paragraph.
func Adventures(records []any) []models.Card {
	cards := make([]models.Card, 0, len(records))
	for _, record := range objects(records) {
		card := models.Card{
			Title:       firstString(record, "name", "title"),
			Description: blocks(record["description"]),
			ImgSrc:      firstString(record, "imageSrc", "img_src"),
			ImgAlt:      firstString(record, "imageAlt", "img_alt"),
			Footer:      models.String(record["footer"]),
		}

		if location := models.String(record["location"]); location != "" {
			card.Content = models.BlockContent(models.Paragraph{Text: "Location: " + location})
		} else {
			card.Content = content(record["content"])
		}

		cards = append(cards, card)
	}
	return cards
}
