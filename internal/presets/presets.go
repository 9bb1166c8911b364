// Package presets holds the read-only lookup tables shared by the registry
// and the identifier generator: the offer table, the subdomain name pool and
// the fallback values used for link previews.
package presets

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// CustomOffer is the offer ID meaning "use the caller-supplied target URL".
const CustomOffer = "CUSTOM"

// Presets is built once at startup and never mutated afterwards.
type Presets struct {
	offers       map[string]string
	Names        []string
	Titles       []string
	Descriptions []string
	Images       []string
}

var defaultNames = []string{
	"Emma", "Olivia", "Sophia", "Ava", "Isabella", "Mia", "Charlotte", "Amelia", "Harper", "Evelyn",
	"Abigail", "Emily", "Ella", "Elizabeth", "Sofia", "Avery", "Mila", "Aria", "Scarlett", "Victoria",
	"Madison", "Luna", "Grace", "Chloe", "Penelope", "Layla", "Riley", "Zoey", "Nora", "Lily",
	"Eleanor", "Hannah", "Lillian", "Addison", "Aubrey", "Ellie", "Stella", "Natalie", "Zoe", "Leah",
	"Hazel", "Violet", "Aurora", "Savannah", "Audrey", "Brooklyn", "Bella", "Claire", "Skylar", "Lucy",
}

var defaultTitles = []string{
	"You've been sent a link",
	"Take a look at this",
	"Something worth a click",
	"Shared with you",
	"Open to see more",
}

var defaultDescriptions = []string{
	"Tap to open the full page.",
	"A link was shared with you.",
	"Continue to the destination page.",
	"Open the link to read more.",
	"Follow the link for details.",
}

var defaultImages = []string{
	"https://placehold.co/1200x630/1877f2/ffffff.png?text=Open+link",
	"https://placehold.co/1200x630/111827/ffffff.png?text=Shared+link",
	"https://placehold.co/1200x630/4f46e5/ffffff.png?text=Take+a+look",
	"https://placehold.co/1200x630/0f766e/ffffff.png?text=Read+more",
	"https://placehold.co/1200x630/be123c/ffffff.png?text=Continue",
}

// Default returns the built-in pools with the given offer table.
func Default(offers map[string]string) *Presets {
	table := make(map[string]string, len(offers))
	for id, u := range offers {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id == "" || id == CustomOffer {
			continue
		}
		table[id] = u
	}
	return &Presets{
		offers:       table,
		Names:        defaultNames,
		Titles:       defaultTitles,
		Descriptions: defaultDescriptions,
		Images:       defaultImages,
	}
}

// Offer returns the destination configured for id. CustomOffer never resolves.
func (p *Presets) Offer(id string) (string, bool) {
	if id == CustomOffer {
		return "", false
	}
	u, ok := p.offers[id]
	return u, ok && u != ""
}

// OfferIDs returns the configured offer IDs in sorted order, without CustomOffer.
func (p *Presets) OfferIDs() []string {
	ids := lo.Keys(p.offers)
	sort.Strings(ids)
	return ids
}

// ParseOffers parses "ID=url,ID2=url2" into an offer table.
func ParseOffers(raw string) (map[string]string, error) {
	offers := make(map[string]string)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, u, ok := strings.Cut(entry, "=")
		id = strings.TrimSpace(id)
		u = strings.TrimSpace(u)
		if !ok || id == "" || u == "" {
			return nil, fmt.Errorf("invalid offer %q, want ID=url", entry)
		}
		offers[strings.ToUpper(id)] = u
	}
	return offers, nil
}
