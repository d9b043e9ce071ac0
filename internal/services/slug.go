package services

import (
	"regexp"
	"strings"
)

var (
	spaceRunRE   = regexp.MustCompile(`\s+`)
	nonWordRE    = regexp.MustCompile(`[^\w\-]+`)
	nonWordDotRE = regexp.MustCompile(`[^\w\-.]+`)
	dashRunRE    = regexp.MustCompile(`-{2,}`)
)

// Slugify lowercases s, turns whitespace into '-', drops anything that is not
// an ASCII word character or '-', and collapses and trims dashes.
func Slugify(s string) string {
	return slug(s, nonWordRE)
}

// SlugifyFilename is Slugify but keeps '.' so extensions survive.
func SlugifyFilename(s string) string {
	return slug(s, nonWordDotRE)
}

func slug(s string, strip *regexp.Regexp) string {
	s = strings.ToLower(s)
	s = spaceRunRE.ReplaceAllString(s, "-")
	s = strip.ReplaceAllString(s, "")
	s = dashRunRE.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
