package utils

import (
	"strings"

	ua "github.com/mileusna/useragent"
)

// ClientInfo is the part of a User-Agent worth putting in an access log.
type ClientInfo struct {
	Browser string
	OS      string
	Device  string
	Bot     bool
}

// ParseUserAgent extracts browser, OS and device class from a User-Agent
// header. API clients such as curl come back as their tool name on an
// unknown OS.
func ParseUserAgent(userAgent string) ClientInfo {
	if strings.TrimSpace(userAgent) == "" {
		return ClientInfo{Browser: "unknown", OS: "unknown", Device: "unknown"}
	}

	parsed := ua.Parse(userAgent)

	info := ClientInfo{
		Browser: parsed.Name,
		OS:      parsed.OS,
		Device:  "desktop",
		Bot:     parsed.Bot,
	}
	if info.Browser == "" {
		info.Browser = "unknown"
	}
	if info.OS == "" {
		info.OS = "unknown"
	}

	switch {
	case parsed.Bot:
		info.Device = "bot"
	case parsed.Mobile:
		info.Device = "mobile"
	case parsed.Tablet:
		info.Device = "tablet"
	case !parsed.Desktop && parsed.OS == "":
		info.Device = "unknown"
	}

	return info
}
