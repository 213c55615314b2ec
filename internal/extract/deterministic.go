package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/modfit/modfit/internal/course"
)

// MaxDescriptionRunes bounds the description captured by the deterministic
// extractor. Truncation is silent.
const MaxDescriptionRunes = 400

var (
	referencePattern   = regexp.MustCompile(`(?i)Reference:[ \t]*(.+)`)
	titlePattern       = regexp.MustCompile(`(?i)Title:[ \t]*(.+)`)
	descriptionPattern = regexp.MustCompile(`(?is)Description:[ \t]*(.+)`)
)

// Deterministic locates labeled Reference/Title/Description markers in the
// document text. It is the fallback strategy: no external calls, no failures
// beyond a clean miss when any marker is absent.
type Deterministic struct{}

func NewDeterministic() *Deterministic {
	return &Deterministic{}
}

func (d *Deterministic) ExtractOne(_ context.Context, documentText string) (*course.Module, error) {
	reference := firstMatch(referencePattern, documentText)
	title := firstMatch(titlePattern, documentText)
	description := firstMatch(descriptionPattern, documentText)

	if reference == "" || title == "" || description == "" {
		return nil, nil
	}

	return &course.Module{
		Reference:   reference,
		Title:       title,
		Description: truncateRunes(description, MaxDescriptionRunes),
	}, nil
}

func firstMatch(pattern *regexp.Regexp, text string) string {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
