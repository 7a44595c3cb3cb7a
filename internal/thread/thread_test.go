package thread

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplit_Empty(t *testing.T) {
	if got := Split("  \n\n ", 0); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSplit_SinglePost(t *testing.T) {
	got := Split("Acme Corp dumps waste.", 0)
	if len(got) != 1 {
		t.Fatalf("expected 1 post, got %d", len(got))
	}
	if got[0].Text != "Acme Corp dumps waste." || got[0].StartLine != 1 || got[0].EndLine != 1 {
		t.Errorf("unexpected post %+v", got[0])
	}
}

func TestSplit_LabelledTweets(t *testing.T) {
	text := "**Tweet 1:** Hook\nmore hook\n**Tweet 2:** Second\n\n### Video Script\nScene 1 - open\nScene 2 - close"
	got := Split(text, 0)

	want := []string{
		"**Tweet 1:** Hook\nmore hook",
		"**Tweet 2:** Second",
		"### Video Script",
		"Scene 1 - open",
		"Scene 2 - close",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d posts, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("post %d: expected %q, got %q", i, want[i], got[i].Text)
		}
	}
	if got[0].StartLine != 1 || got[0].EndLine != 2 {
		t.Errorf("expected lines 1-2, got %d-%d", got[0].StartLine, got[0].EndLine)
	}
}

func TestSplit_DoubleBlankLine(t *testing.T) {
	got := Split("first\n\n\nsecond", 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 posts, got %d: %+v", len(got), got)
	}
	if got[1].Text != "second" || got[1].StartLine != 4 {
		t.Errorf("unexpected second post %+v", got[1])
	}
}

func TestSplit_RespectsMax(t *testing.T) {
	text := strings.Repeat("lobbying ", 100)
	got := Split(text, MaxPostLen)
	if len(got) < 3 {
		t.Fatalf("expected at least 3 posts, got %d", len(got))
	}
	for i, p := range got {
		if n := utf8.RuneCountInString(p.Text); n > MaxPostLen {
			t.Errorf("post %d has %d runes", i, n)
		}
	}
}

func TestSplit_LongWordIsCut(t *testing.T) {
	got := Split(strings.Repeat("x", 25), 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 posts, got %d: %+v", len(got), got)
	}
	if got[2].Text != "xxxxx" {
		t.Errorf("expected remainder, got %q", got[2].Text)
	}
}

func TestSplit_CountsRunes(t *testing.T) {
	text := strings.Repeat("ø", 280)
	if got := Split(text, 0); len(got) != 1 {
		t.Errorf("expected 280 runes to fit one post, got %d posts", len(got))
	}
}
