// Package normalize turns raw search engine hits into clean, display-ready results.
package normalize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/forPelevin/gomoji"
	"golang.org/x/text/unicode/norm"

	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
)

// Reason explains why a raw hit was rejected. Empty means accepted.
type Reason string

// Rejection reasons, used as metric labels.
const (
	Accepted     Reason = ""
	EmptyContent Reason = "empty_content"
	EmptyTitle   Reason = "empty_title"
	EmptySnippet Reason = "empty_snippet"
	ParseError   Reason = "parse_error"
)

const videoCategory = "videos"

// inlineDataPrefix marks snippets that are just an embedded image rendered as text.
const inlineDataPrefix = "[data:image"

// blockSelector lists elements whose boundaries must become whitespace,
// otherwise adjacent words are glued together.
const blockSelector = "p, div, li, ul, ol, tr, td, th, h1, h2, h3, h4, h5, h6, blockquote, pre, section, article"

// PlainText converts an HTML fragment to a single line of plain text.
// Entities are decoded, markup and scripts are dropped, whitespace runs are collapsed.
func PlainText(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment), nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br, hr").ReplaceWithHtml(" ")
	doc.Find(blockSelector).AfterHtml(" ")

	return collapse(doc.Text()), nil
}

// Snippet converts an HTML excerpt to plain text and strips emoji.
// Excerpts that are only an inline data image yield "".
func Snippet(fragment string) (string, error) {
	text, err := PlainText(fragment)
	if err != nil {
		return "", err
	}

	text = collapse(gomoji.RemoveEmojis(text))

	if strings.HasPrefix(text, inlineDataPrefix) {
		return "", nil
	}
	return text, nil
}

// Textual normalizes a general web hit. Hits without content, title or snippet are rejected.
func Textual(raw result.Raw) (result.Text, Reason) {
	if raw.Content == "" {
		return result.Text{}, EmptyContent
	}

	title, err := PlainText(raw.Title)
	if err != nil {
		return result.Text{}, ParseError
	}
	if title == "" {
		return result.Text{}, EmptyTitle
	}

	snippet, err := Snippet(raw.Content)
	if err != nil {
		return result.Text{}, ParseError
	}
	if snippet == "" {
		return result.Text{}, EmptySnippet
	}

	return result.NewText(title, snippet, raw.URL), Accepted
}

// Graphical normalizes an image or video hit.
// Videos use the thumbnail and embeddable iframe (falling back to the page URL);
// images use the thumbnail source and full-size image.
func Graphical(raw result.Raw) (result.Image, Reason) {
	title, err := PlainText(raw.Title)
	if err != nil {
		return result.Image{}, ParseError
	}

	if raw.Category == videoCategory {
		source := raw.IframeSrc
		if source == "" {
			source = raw.URL
		}
		return result.NewImage(title, raw.URL, raw.Thumbnail, source), Accepted
	}

	return result.NewImage(title, raw.URL, raw.ThumbnailSrc, raw.ImgSrc), Accepted
}

// collapse applies NFC normalization and squeezes whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}
