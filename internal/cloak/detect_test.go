package cloak

import "testing"

const (
	fbCrawlerUA      = "facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)"
	fbInAppUA        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 [FBAN/FBIOS;FBAV/440.0.0.31.110;facebookexternalhit]"
	pinterestInAppUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 [Pinterest/iOS]"
	chromeUA         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	iphoneUA         = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
)

func TestClassify_Preview(t *testing.T) {
	tests := []struct {
		name string
		ua   string
		want bool
	}{
		{"facebook crawler", fbCrawlerUA, true},
		{"facebot", "Facebot", true},
		{"twitter", "Twitterbot/1.0", true},
		{"slack", "Slackbot-LinkExpanding 1.0 (+https://api.slack.com/robots)", true},
		{"whatsapp", "WhatsApp/2.23.20.0 A", true},
		{"discord", "Mozilla/5.0 (compatible; Discordbot/2.0; +https://discordapp.com)", true},
		{"pinterest crawler", "Pinterest/0.2 (+https://www.pinterest.com/bot.html)", true},
		{"pinterestbot", "Mozilla/5.0 (compatible; Pinterestbot/1.0; +https://www.pinterest.com/bot.html)", true},
		{"facebook in-app", fbInAppUA, false},
		{"pinterest in-app", pinterestInAppUA, false},
		{"instagram in-app", "Mozilla/5.0 (iPhone) Instagram 300.0 facebookexternalhit", false},
		{"chrome", chromeUA, false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ua).Preview; got != tt.want {
				t.Errorf("Classify(%q).Preview = %v, want %v", tt.ua, got, tt.want)
			}
		})
	}
}

func TestClassify_InAppIsNotBot(t *testing.T) {
	for _, ua := range []string{fbInAppUA, pinterestInAppUA} {
		c := Classify(ua)
		if !c.InApp {
			t.Errorf("Classify(%q).InApp = false, want true", ua)
		}
		if c.Bot {
			t.Errorf("Classify(%q).Bot = true, want false for in-app browser", ua)
		}
	}
}

func TestClassify_Device(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{chromeUA, "desktop"},
		{iphoneUA, "mobile"},
		{fbCrawlerUA, "bot"},
		{"curl/8.4.0", "bot"},
	}
	for _, tt := range tests {
		if got := Classify(tt.ua).Device(); got != tt.want {
			t.Errorf("Classify(%q).Device() = %q, want %q", tt.ua, got, tt.want)
		}
	}
}
