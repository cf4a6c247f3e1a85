package models

import (
	"time"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// RawDocument is one input file as read from disk, before normalization.
type RawDocument struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	Status          string    `json:"status"`
	PublishedAt     time.Time `json:"published_at"`
	JSONData        []any     `json:"json_data"`
}

// Page is the canonical, topic-agnostic page model.
type Page struct {
	Slug            string    `json:"slug" validate:"required"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	Status          Status    `json:"status" validate:"oneof=draft published"`
	PublishedAt     time.Time `json:"published_at"`
	Topics          []string  `json:"topics"`
	Cards           []Card    `json:"cards"`
}
