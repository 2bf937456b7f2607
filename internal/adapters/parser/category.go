package parser

import (
	"strings"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
)

// categoryKeywords is checked in order; the first category with a matching
// keyword wins.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{domain.CategoryAITools, []string{"openai", "chatgpt", "anthropic", "claude", "midjourney", "perplexity", "jasper", "copy.ai", "gemini", "elevenlabs", "huggingface", "hugging face"}},
	{domain.CategoryDesign, []string{"figma", "canva", "adobe", "sketch", "framer", "invision", "dribbble"}},
	{domain.CategoryVideoEditing, []string{"descript", "capcut", "premiere", "final cut", "davinci", "veed", "riverside", "loom.com"}},
	{domain.CategoryProductivity, []string{"notion", "slack", "zoom", "todoist", "evernote", "asana", "trello", "clickup", "dropbox", "monday.com", "microsoft 365", "google workspace", "1password", "calendly"}},
	{domain.CategoryAnalytics, []string{"mixpanel", "amplitude", "hotjar", "google analytics", "plausible", "fullstory"}},
	{domain.CategoryMarketing, []string{"mailchimp", "hubspot", "semrush", "ahrefs", "buffer", "hootsuite", "convertkit"}},
	{domain.CategoryDevelopment, []string{"github", "gitlab", "vercel", "netlify", "heroku", "digitalocean", "amazon web services", "jetbrains", "cursor", "replit", "sentry"}},
	{domain.CategoryFinance, []string{"quickbooks", "xero", "freshbooks", "stripe", "expensify"}},
	{domain.CategoryEntertainment, []string{"netflix", "spotify", "hulu", "disney", "hbo", "youtube", "twitch", "prime video", "apple music", "paramount", "peacock"}},
	{domain.CategoryEducation, []string{"coursera", "udemy", "skillshare", "masterclass", "duolingo", "brilliant", "linkedin learning", "codecademy"}},
}

// InferCategory maps a merchant name to a category by substring match,
// returning "other" when nothing matches.
func InferCategory(merchantName string) string {
	name := strings.ToLower(merchantName)
	if name == "" {
		return domain.CategoryOther
	}
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(name, kw) {
				return c.category
			}
		}
	}
	return domain.CategoryOther
}

func (p *RulesParser) InferCategory(merchantName string) string { return InferCategory(merchantName) }
