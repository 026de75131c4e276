package services

import (
	"fmt"
	"math/rand"
)

// CopySuggestion is a generated caption with suggested hashtags.
type CopySuggestion struct {
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// CopywriterService generates caption drafts from a prompt, tone, and target
// platform. Generation is template-based; no external model is called.
type CopywriterService struct {
	// pick is a seam so tests get deterministic template selection.
	pick func(n int) int
}

// NewCopywriterService constructs a CopywriterService.
func NewCopywriterService() *CopywriterService {
	return &CopywriterService{pick: rand.Intn}
}

var toneTemplates = map[string][]string{
	"professional": {
		"We're excited to share that %s. This milestone represents our commitment to excellence and innovation. Join us as we continue to push boundaries and deliver exceptional results.",
		"Thrilled to announce %s. Our team has been working diligently to bring this vision to life, and we couldn't be more proud of the outcome.",
	},
	"casual": {
		"Hey everyone! %s and we're super excited about it! 🎉 Can't wait to hear what you think. Let us know in the comments!",
		"So... %s and honestly, we're pretty stoked about it! Drop a comment and let us know your thoughts! 💭",
	},
	"witty": {
		"Plot twist: %s! We know, we know - try to contain your excitement. 😎 But seriously, this is pretty cool stuff.",
		"*Drumroll please* 🥁 %s! Yes, it's finally happening. Your move, competitors.",
	},
	"formal": {
		"We are pleased to inform you that %s. This development aligns with our strategic objectives and underscores our dedication to quality and innovation.",
		"It is with great pleasure that we announce %s. This achievement reflects our unwavering commitment to excellence.",
	},
	"friendly": {
		"Hi friends! 👋 We wanted to share some exciting news - %s! We're so grateful for your continued support and can't wait to hear your feedback!",
		"Hey there! We've got some awesome news to share: %s! Your support means everything to us. Let's celebrate together! 🎊",
	},
}

var commonHashtags = []string{"#SocialMedia", "#ContentMarketing", "#DigitalMarketing", "#Marketing"}

var platformHashtags = map[string][]string{
	"instagram": {"#InstaGood", "#PhotoOfTheDay", "#InstaDaily"},
	"linkedin":  {"#Leadership", "#Business", "#Professional"},
	"twitter":   {"#Tech", "#Innovation", "#Trending"},
	"facebook":  {"#Community", "#ShareTheLove", "#Engagement"},
	"general":   {"#SocialMediaMarketing", "#ContentCreation", "#BrandBuilding"},
}

// Generate produces a caption for prompt in the given tone plus hashtags for
// the platform. Unknown tones fall back to professional, unknown platforms
// to general.
func (s *CopywriterService) Generate(prompt, tone, platform string) *CopySuggestion {
	templates, ok := toneTemplates[tone]
	if !ok {
		templates = toneTemplates["professional"]
	}
	content := fmt.Sprintf(templates[s.pick(len(templates))], prompt)

	platformTags, ok := platformHashtags[platform]
	if !ok {
		platformTags = platformHashtags["general"]
	}
	hashtags := make([]string, 0, 5)
	hashtags = append(hashtags, commonHashtags[:3]...)
	hashtags = append(hashtags, platformTags[:2]...)

	return &CopySuggestion{Content: content, Hashtags: hashtags}
}
