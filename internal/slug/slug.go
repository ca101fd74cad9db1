// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug builds the readable part of product URLs and parses the
// numeric id back out of them.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, whitespace or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespace runs become a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from a product name. Accents are
// folded to their base letter.
// Example: "Bridal Earrings - Jhumka Style" → "bridal-earrings-jhumka-style"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(foldAccents(s)))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// ParseID extracts the product id from a "{id}" or "{id}-{slug}" path
// segment. The slug part is ignored, so stale slugs still resolve.
func ParseID(ref string) (int64, bool) {
	if i := strings.IndexByte(ref, '-'); i >= 0 {
		ref = ref[:i]
	}
	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
