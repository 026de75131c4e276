package services

import (
	"strings"
	"testing"
)

func TestGenerate_KnownTone(t *testing.T) {
	s := NewCopywriterService()
	s.pick = func(n int) int { return 0 }

	got := s.Generate("our product launch", "formal", "linkedin")
	if !strings.Contains(got.Content, "our product launch") {
		t.Fatalf("prompt missing from content: %q", got.Content)
	}
	if !strings.HasPrefix(got.Content, "We are pleased to inform you") {
		t.Fatalf("unexpected formal template: %q", got.Content)
	}
	if len(got.Hashtags) != 5 {
		t.Fatalf("want 5 hashtags, got %v", got.Hashtags)
	}
	if got.Hashtags[3] != "#Leadership" || got.Hashtags[4] != "#Business" {
		t.Fatalf("unexpected platform hashtags: %v", got.Hashtags)
	}
}

func TestGenerate_FallsBackToDefaults(t *testing.T) {
	s := NewCopywriterService()
	s.pick = func(n int) int { return 0 }

	got := s.Generate("big news", "sarcastic", "myspace")
	if !strings.HasPrefix(got.Content, "We're excited to share") {
		t.Fatalf("want professional fallback, got %q", got.Content)
	}
	if got.Hashtags[3] != "#SocialMediaMarketing" {
		t.Fatalf("want general fallback hashtags, got %v", got.Hashtags)
	}
}

func TestGenerate_PickBounds(t *testing.T) {
	s := NewCopywriterService()
	var max int
	s.pick = func(n int) int {
		max = n
		return n - 1
	}
	s.Generate("x", "witty", "twitter")
	if max != 2 {
		t.Fatalf("pick range = %d, want 2", max)
	}
}
