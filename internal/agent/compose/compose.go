// Package compose formats generated prose into the final suggestion body:
// markup artifacts are stripped and a fixed metadata footer is appended.
package compose

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/neuroblog/neuroblog/internal/agent/images"
)

var (
	boldRe       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*]+)\*`)
	headingRe    = regexp.MustCompile(`#{1,6}\s*`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s?`)
	breaksRe     = regexp.MustCompile(`\n{3,}`)
)

// Clean strips HTML tags, markdown emphasis, headings, link syntax, and
// blockquote markers, producing near-plain prose with paragraph breaks
// preserved.
func Clean(body string) string {
	text := stripHTML(body)
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = headingRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = blockquoteRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "•", "-")
	text = breaksRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// stripHTML drops tags while keeping text content, including newlines
// inside text nodes. Script and style bodies are discarded.
func stripHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				b.Write(tokenizer.Text())
			}
		}
	}
}

// Format cleans the body and appends the metadata footer: primary image
// and credit, optional secondary image, origin link, topic, date, and the
// fixed attribution line. Pure function; the caller supplies the date.
func Format(body string, imgs []images.Image, topicTitle, originURL, date string) string {
	clean := Clean(body)

	var primaryURL, primaryCredit, secondary string
	if len(imgs) > 0 {
		primaryURL = imgs[0].URL
		primaryCredit = imgs[0].Credit
	}
	if len(imgs) > 1 {
		secondary = fmt.Sprintf("Additional Image: %s\n\n", imgs[1].URL)
	}

	origin := originURL
	if origin == "" {
		origin = "Not available"
	}

	return fmt.Sprintf(`%s

Image: %s
Photo Credit: %s

%sRelated Resources:
- Original Source: %s
- Topic: %s
- Published: %s
- Reading Time: 8-12 minutes

Stay updated with the latest technology insights!

© 2025 NeuroBlog - All rights reserved.`,
		clean, primaryURL, primaryCredit, secondary, origin, topicTitle, date)
}
