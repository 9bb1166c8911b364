// Package cloak decides how a resolved link is rendered: link-preview
// crawlers get a metadata document, everyone else a timed redirect.
package cloak

import (
	"strings"

	"github.com/mssola/useragent"
)

// Preview fetchers that unfurl shared links. Matched case-insensitively.
var previewSignatures = []string{
	"facebookexternalhit",
	"facebot",
	"twitterbot",
	"slackbot",
	"linkedinbot",
	"whatsapp",
	"telegrambot",
	"discordbot",
	"pinterestbot",
	"pinterest/0.",
	"skypeuripreview",
}

// In-app browsers carry crawler-like tokens but are real people.
var inAppSignatures = []string{
	"fban",
	"fbav",
	"fb_iab",
	"instagram",
	"[pinterest/",
}

// Generic automation markers, used for stats only.
var botSignatures = []string{
	"bot",
	"spider",
	"crawl",
	"headlesschrome/",
	"curl/",
	"wget/",
	"python-requests/",
	"go-http-client/",
	"okhttp/",
}

type Client struct {
	Preview bool
	InApp   bool
	Bot     bool
	Mobile  bool
	Browser string
}

// Device buckets the client for the visit summary.
func (c Client) Device() string {
	switch {
	case c.Bot:
		return "bot"
	case c.Mobile:
		return "mobile"
	default:
		return "desktop"
	}
}

func Classify(rawUA string) Client {
	lower := strings.ToLower(rawUA)
	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()

	c := Client{
		InApp:   containsAny(lower, inAppSignatures),
		Mobile:  ua.Mobile(),
		Browser: browser,
	}
	c.Preview = !c.InApp && containsAny(lower, previewSignatures)
	c.Bot = c.Preview || (!c.InApp && (ua.Bot() || containsAny(lower, botSignatures)))
	return c
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
