package text

import (
	"regexp"
	"strings"
)

// datePattern matches a "<Month> <Day>, <Year>" shaped substring. The match is
// returned verbatim; no calendar parsing or validation happens here.
var datePattern = regexp.MustCompile(`\w+ \d{1,2}, \d{4}`)

// ExtractDate returns the first date-shaped substring of the provenance line,
// or "" when none matches.
func ExtractDate(whereabout string) string {
	return datePattern.FindString(whereabout)
}

// UnknownSource is the sentinel returned when no known platform appears.
const UnknownSource = "Unknown"

// sourcePriority is the fixed ordered list of known platforms. List order, not
// text position, breaks ties: "X" shadows "Twitter" even when "Twitter"
// appears first in the text. The order is load-bearing and must not change.
var sourcePriority = []string{
	"Facebook",
	"Instagram",
	"X",
	"Twitter",
	"YouTube",
	"TikTok",
	"Threads",
	"Pinterest",
	"LinkedIn",
	"Reddit",
	"Truth Social",
}

// ExtractSource scans the provenance line for a known platform name,
// first match in priority order wins. No match yields UnknownSource.
func ExtractSource(whereabout string) string {
	for _, src := range sourcePriority {
		if strings.Contains(whereabout, src) {
			return src
		}
	}
	return UnknownSource
}
