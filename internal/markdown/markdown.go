// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts product descriptions into HTML using goldmark.
// Raw HTML in the source is dropped, so admin-entered text cannot inject
// markup into the storefront.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
		extension.Typographer, // smart quotes and dashes
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(), // descriptions are typed in a textarea
	),
)

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
