// Package export builds downloadable artifacts from generated text.
package export

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Artifact is a named Markdown document ready to be served as a
// download.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// MarkdownArtifact wraps generated text in a download named from a
// sanitized project-name slug.
func MarkdownArtifact(projectName, content string) Artifact {
	return Artifact{
		Filename:    Slug(projectName) + ".md",
		ContentType: "text/markdown; charset=utf-8",
		Body:        []byte(content),
	}
}

// Slug lowercases the name and collapses every non-alphanumeric run
// into a single hyphen.
func Slug(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "project"
	}
	return slug
}
