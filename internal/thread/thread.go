// Package thread splits generated campaign markdown into postable pieces.
package thread

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxPostLen is the X post limit in characters.
const MaxPostLen = 280

// Post is one piece of a thread with its position in the source text.
type Post struct {
	Text      string `json:"text"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// postLabel matches the line that opens a post: "Tweet 3:", "**Tweet 3**",
// "Scene 2 -", "### Tweet 1" and similar.
var postLabel = regexp.MustCompile(`(?i)^\s*(?:#+\s*)?\**\s*(?:tweet|post|scene)\s*\d+`)

// Split breaks text into posts. A new post starts at every heading, labelled
// post line, or blank-line pair. Posts longer than max are split on word
// boundaries. max <= 0 means MaxPostLen.
func Split(text string, max int) []Post {
	if max <= 0 {
		max = MaxPostLen
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var posts []Post
	for _, b := range splitBlocks(text) {
		if utf8.RuneCountInString(b.Text) <= max {
			posts = append(posts, b)
			continue
		}
		posts = append(posts, hardSplit(b, max)...)
	}
	return posts
}

func splitBlocks(text string) []Post {
	lines := strings.Split(text, "\n")
	var blocks []Post
	var current []string
	startLine := 1

	flush := func(endLine int) {
		if t := strings.TrimSpace(strings.Join(current, "\n")); t != "" {
			blocks = append(blocks, Post{Text: t, StartLine: startLine, EndLine: endLine})
		}
		current = nil
		startLine = endLine + 1
	}

	prevEmpty := false
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if (strings.HasPrefix(trimmed, "#") || postLabel.MatchString(line)) && len(current) > 0 {
			flush(lineNum - 1)
		}

		if trimmed == "" {
			if prevEmpty && len(current) > 0 {
				flush(lineNum - 1)
			}
			prevEmpty = true
			if len(current) == 0 {
				startLine = lineNum + 1
				continue
			}
			current = append(current, line)
			continue
		}
		prevEmpty = false
		current = append(current, line)
	}
	flush(len(lines))

	return blocks
}

// hardSplit packs words into pieces of at most max runes. A single word longer
// than max is cut.
func hardSplit(b Post, max int) []Post {
	var posts []Post
	var sb strings.Builder
	n := 0

	emit := func() {
		if t := strings.TrimSpace(sb.String()); t != "" {
			posts = append(posts, Post{Text: t, StartLine: b.StartLine, EndLine: b.EndLine})
		}
		sb.Reset()
		n = 0
	}

	for _, w := range strings.Fields(b.Text) {
		for utf8.RuneCountInString(w) > max {
			emit()
			r := []rune(w)
			posts = append(posts, Post{Text: string(r[:max]), StartLine: b.StartLine, EndLine: b.EndLine})
			w = string(r[max:])
		}
		wl := utf8.RuneCountInString(w)
		if n > 0 && n+1+wl > max {
			emit()
		}
		if n > 0 {
			sb.WriteByte(' ')
			n++
		}
		sb.WriteString(w)
		n += wl
	}
	emit()

	return posts
}
