package collection

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedName holds the fields extracted from an audio file base name.
type ParsedName struct {
	Rule    string
	TrackNo int
	Artist  string
	Title   string
	Ext     string // lower-case, with leading dot
}

// NameRule pairs an anchored pattern with the extraction of its groups.
// Rules are evaluated in order by ParseFilename; first match wins.
type NameRule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(m []string) ParsedName
}

// NameRules is the ordered list of supported file naming patterns. The order
// is the tie-break: "A - 01 - B.mp3" also satisfies "<artist> - <title>" but
// must be read as artist/number/title.
var NameRules = []NameRule{
	{
		Name:    "artist-number-title",
		Pattern: regexp.MustCompile(`^(.+) - (\d{1,3}) - (.+)(\..{1,5})$`),
		Extract: func(m []string) ParsedName {
			return ParsedName{Artist: m[1], TrackNo: atoi(m[2]), Title: m[3], Ext: m[4]}
		},
	},
	{
		Name:    "number-dash-artist-title",
		Pattern: regexp.MustCompile(`^(\d{1,3})  - (.+) - (.+)(\..{1,5})$`),
		Extract: func(m []string) ParsedName {
			return ParsedName{TrackNo: atoi(m[1]), Artist: m[2], Title: m[3], Ext: m[4]}
		},
	},
	{
		Name:    "number-artist-title",
		Pattern: regexp.MustCompile(`^(\d{1,3}) (.+) - (.+)(\..{1,5})$`),
		Extract: func(m []string) ParsedName {
			return ParsedName{TrackNo: atoi(m[1]), Artist: m[2], Title: m[3], Ext: m[4]}
		},
	},
	{
		Name:    "artist-title",
		Pattern: regexp.MustCompile(`^(.+) - (.+)(\..{1,5})$`),
		Extract: func(m []string) ParsedName {
			return ParsedName{Artist: m[1], Title: m[2], Ext: m[3]}
		},
	},
}

// ParseFilename matches base against NameRules. ok is false when no rule
// matched; the caller decides how to degrade.
func ParseFilename(base string) (ParsedName, bool) {
	for _, rule := range NameRules {
		m := rule.Pattern.FindStringSubmatch(base)
		if m == nil {
			continue
		}
		p := rule.Extract(m)
		p.Rule = rule.Name
		p.Ext = strings.ToLower(p.Ext)
		return p, true
	}
	return ParsedName{}, false
}

// atoi never fails on the digit-only groups captured above.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
