package filter

import (
	"net/url"
	"strings"
)

const (
	DefaultViewerBase   = "https://simonrob.github.io/online-ics-feed-viewer/"
	DefaultProviderBase = "https://www.google.com/calendar/render"

	webcalScheme = "webcal://"
	httpsScheme  = "https://"
)

// LinkKind is one of the representations derived from a link text.
type LinkKind int

const (
	PlainLink LinkKind = iota
	ViewerLink
	ProviderLink
	NativeLink
)

// Links are the representations of one link text.
type Links struct {
	Plain    string
	Viewer   string
	Provider string
	Native   string
}

type LinkRenderer struct {
	viewerBase   string
	providerBase string
}

// NewLinkRenderer falls back to the default bases for empty arguments.
func NewLinkRenderer(viewerBase string, providerBase string) LinkRenderer {
	if viewerBase == "" {
		viewerBase = DefaultViewerBase
	}
	if providerBase == "" {
		providerBase = DefaultProviderBase
	}

	return LinkRenderer{
		viewerBase:   viewerBase,
		providerBase: providerBase,
	}
}

func (renderer LinkRenderer) Render(linkText string, mode Mode) Links {
	return Links{
		Plain:    renderer.Href(PlainLink, linkText, mode),
		Viewer:   renderer.Href(ViewerLink, linkText, mode),
		Provider: renderer.Href(ProviderLink, linkText, mode),
		Native:   renderer.Href(NativeLink, linkText, mode),
	}
}

func (renderer LinkRenderer) Href(kind LinkKind, linkText string, mode Mode) string {
	switch kind {
	case ViewerLink:
		params := []string{
			"feed=" + url.QueryEscape(FeedURL(linkText)),
			"cors=false",
			"title=" + url.QueryEscape(mode.Title()),
			"hideinput=true",
		}
		return renderer.viewerBase + "#?" + strings.Join(params, pairSeparator)
	case ProviderLink:
		return renderer.providerBase + "?cid=" + url.QueryEscape(linkText)
	case PlainLink, NativeLink:
		return linkText
	default:
		return linkText
	}
}

// WebcalLink builds the initial link text of a feed served at feedPath on host.
func WebcalLink(host string, feedPath string) string {
	return webcalScheme + host + feedPath
}

// FeedURL turns a webcal link text into the plain https feed url.
func FeedURL(linkText string) string {
	if rest, ok := strings.CutPrefix(linkText, webcalScheme); ok {
		return httpsScheme + rest
	}
	return linkText
}
