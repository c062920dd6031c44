package entrycard

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

// absoluteURL matches scheme-qualified and protocol-relative URLs.
var absoluteURL = regexp.MustCompile(`(?i)^(?:[a-z]+:)?//`)

// Summary is the card produced by the default renderer.
type Summary struct {
	Path            string `json:"path"`
	CollectionLabel string `json:"collectionLabel,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	ViewStyle       string `json:"viewStyle"`
}

// Default renders entries as a Summary.
var Default Renderer = RendererFunc(renderSummary)

func renderSummary(p Props) (Card, error) {
	viewStyle := p.ViewStyle
	if viewStyle == "" {
		viewStyle = ViewStyleList
	}

	s := Summary{
		Path:            "/collections/" + p.Collection.Name + "/entries/" + p.Entry.Slug,
		CollectionLabel: p.CollectionLabel,
		Title:           p.Entry.Label,
		ViewStyle:       viewStyle,
	}
	if s.Title == "" && p.Fields.Title != nil {
		s.Title = p.Entry.StringValue(p.Fields.Title.Name)
	}
	if p.Fields.Description != nil {
		s.Description = p.Entry.StringValue(p.Fields.Description.Name)
	}
	if p.Fields.Image != nil {
		s.Image = ResolvePath(p.Entry.StringValue(p.Fields.Image.Name), p.PublicFolder)
	}
	return s, nil
}

// ResolvePath turns a media path stored in an entry into a URL path.
// Absolute URLs are kept, bare file names are placed under publicFolder and
// other relative paths are rooted at "/".
func ResolvePath(p, publicFolder string) string {
	if p == "" {
		return ""
	}
	if absoluteURL.MatchString(p) {
		return p
	}
	if publicFolder == "" {
		return encodePath(p)
	}
	if !strings.Contains(p, "/") {
		return encodePath(path.Join("/", publicFolder, p))
	}
	return encodePath(path.Join("/", p))
}

func encodePath(p string) string {
	return (&url.URL{Path: p}).EscapedPath()
}
