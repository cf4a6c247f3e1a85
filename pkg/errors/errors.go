package errors

import (
	goerrors "errors"
	"fmt"
	"strings"
)

// Steps at which seeding can fail.
const (
	StepValidate             = "validate"
	StepBegin                = "begin"
	StepInsertPage           = "insert_page"
	StepUpsertTopic          = "upsert_topic"
	StepLinkTopic            = "link_topic"
	StepInsertContentBlock   = "insert_content_block"
	StepInsertStructuredCard = "insert_structured_card"
	StepCommit               = "commit"
)

type SeedError struct {
	Slug    string
	Step    string
	Card    string
	Message string
	Err     error
}

func NewSeedError(msg string) *SeedError {
	return &SeedError{
		Message: msg,
	}
}

func NewSeedErrorf(format string, args ...any) *SeedError {
	err := fmt.Errorf(format, args...)
	return &SeedError{
		Message: err.Error(),
		Err:     goerrors.Unwrap(err),
	}
}

// WrapSeedError returns e unchanged when it already is a SeedError, otherwise
// wraps it so the cause stays reachable through errors.Is and errors.As.
func WrapSeedError(e error) *SeedError {
	if e == nil {
		return nil
	}

	var seedError *SeedError
	if goerrors.As(e, &seedError) {
		return seedError
	}

	return &SeedError{
		Message: e.Error(),
		Err:     e,
	}
}

func (e *SeedError) Error() string {
	path := []string{}
	if e.Slug != "" {
		path = append(path, fmt.Sprintf("page '%s'", e.Slug))
	}
	if e.Step != "" {
		path = append(path, fmt.Sprintf("step '%s'", e.Step))
	}
	if e.Card != "" {
		path = append(path, fmt.Sprintf("card '%s'", e.Card))
	}

	if len(path) == 0 {
		return e.Message
	}

	return strings.Join(path, " -> ") + ": " + e.Message
}

func (e *SeedError) Unwrap() error {
	return e.Err
}

func (e *SeedError) AddSlug(slug string) *SeedError {
	e.Slug = slug
	return e
}

func (e *SeedError) AddStep(step string) *SeedError {
	e.Step = step
	return e
}

func (e *SeedError) AddCard(title string) *SeedError {
	e.Card = title
	return e
}

func IsSeedError(err error) bool {
	var seedError *SeedError
	return goerrors.As(err, &seedError)
}
