// Package social turns donor-entered handles into profile links.
package social

import (
	"net/url"
	"strings"

	"donorwall/internal/models"
)

// Platform keys, matching the columns on the donor record.
const (
	PlatformX         = "x"
	PlatformTiktok    = "tiktok"
	PlatformInstagram = "instagram"
	PlatformYoutube   = "youtube"
	PlatformTwitch    = "twitch"
)

// Link is one resolved profile link for a donor card.
type Link struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

var profileBase = map[string]func(handle string) string{
	PlatformX:         func(h string) string { return "https://x.com/" + h },
	PlatformTiktok:    func(h string) string { return "https://www.tiktok.com/@" + h },
	PlatformInstagram: func(h string) string { return "https://instagram.com/" + h },
	PlatformYoutube:   func(h string) string { return "https://youtube.com/@" + h },
	PlatformTwitch:    func(h string) string { return "https://twitch.tv/" + h },
}

// NormalizeHandle resolves raw donor input for one platform into an
// absolute profile URL. Full http(s) URLs pass through unchanged; bare
// handles (with or without a leading @) map onto the platform's profile
// path. Unknown platforms and empty input yield "".
func NormalizeHandle(raw, platform string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		if u, err := url.Parse(v); err == nil && u.Host != "" {
			return u.String()
		}
		return ""
	}
	base, ok := profileBase[platform]
	if !ok {
		return ""
	}
	return base(strings.TrimPrefix(v, "@"))
}

// LinksFor collects the resolvable profile links for a donor, in a fixed
// platform order.
func LinksFor(d models.Donor) []Link {
	pairs := []struct {
		platform string
		raw      string
	}{
		{PlatformX, d.SocialX},
		{PlatformTiktok, d.SocialTiktok},
		{PlatformInstagram, d.SocialInstagram},
		{PlatformYoutube, d.SocialYoutube},
		{PlatformTwitch, d.SocialTwitch},
	}
	var links []Link
	for _, p := range pairs {
		if href := NormalizeHandle(p.raw, p.platform); href != "" {
			links = append(links, Link{Platform: p.platform, URL: href})
		}
	}
	return links
}
