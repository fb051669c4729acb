package content

import "github.com/microcosm-cc/bluemonday"

var descriptionPolicy = buildDescriptionPolicy()

// buildDescriptionPolicy builds the sanitizer for seller-authored rich
// text. Descriptions come from a rich text editor, so common formatting
// is allowed while anything executable is stripped.
func buildDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowElements("ul", "ol", "li")
	p.AllowElements("strong", "em", "u", "s", "blockquote")
	p.AllowAttrs("class").OnElements("p", "span", "div", "ul", "ol", "li")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowRelativeURLs(true)

	return p
}

// SanitizeDescription strips unsafe markup from a content description.
func SanitizeDescription(s string) string {
	return descriptionPolicy.Sanitize(s)
}

// SanitizeTitle strips all markup from a title; titles are plain text.
func SanitizeTitle(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}
