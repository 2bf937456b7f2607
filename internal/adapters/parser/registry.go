package parser

import (
	"regexp"

	"github.com/cp25sy5-modjot/subscription-parser/internal/domain"
)

// MerchantSignature maps a lower-case sender/content key to a canonical merchant.
// AmountPattern, when set, must capture the amount in group 1; a group named
// "currency" is read as an ISO code.
type MerchantSignature struct {
	Key           string
	CanonicalName string
	Category      string
	AmountPattern *regexp.Regexp
	CycleKeywords map[domain.BillingCycle][]string
}

// DefaultRegistry is matched top to bottom and the first hit wins, so earlier
// entries shadow later ones whose keys overlap.
var DefaultRegistry = []MerchantSignature{
	// AI tools
	{Key: "openai", CanonicalName: "OpenAI", Category: domain.CategoryAITools},
	{Key: "anthropic", CanonicalName: "Anthropic", Category: domain.CategoryAITools},
	{Key: "claude.ai", CanonicalName: "Claude", Category: domain.CategoryAITools},
	{Key: "midjourney", CanonicalName: "Midjourney", Category: domain.CategoryAITools},
	{Key: "perplexity.ai", CanonicalName: "Perplexity", Category: domain.CategoryAITools},

	// Design
	{Key: "figma", CanonicalName: "Figma", Category: domain.CategoryDesign},
	{Key: "canva.com", CanonicalName: "Canva", Category: domain.CategoryDesign},
	{
		Key:           "adobe",
		CanonicalName: "Adobe",
		Category:      domain.CategoryDesign,
		// "annual plan, paid monthly" is billed every month
		CycleKeywords: map[domain.BillingCycle][]string{
			domain.CycleMonthly: {"paid monthly", "billed monthly"},
		},
	},

	// Video editing
	{Key: "descript.com", CanonicalName: "Descript", Category: domain.CategoryVideoEditing},
	{Key: "capcut", CanonicalName: "CapCut", Category: domain.CategoryVideoEditing},

	// Productivity
	{Key: "notion.so", CanonicalName: "Notion", Category: domain.CategoryProductivity},
	{Key: "slack.com", CanonicalName: "Slack", Category: domain.CategoryProductivity},
	{Key: "zoom.us", CanonicalName: "Zoom", Category: domain.CategoryProductivity},
	{Key: "dropbox", CanonicalName: "Dropbox", Category: domain.CategoryProductivity},

	// Analytics
	{Key: "mixpanel", CanonicalName: "Mixpanel", Category: domain.CategoryAnalytics},
	{Key: "hotjar", CanonicalName: "Hotjar", Category: domain.CategoryAnalytics},

	// Marketing
	{Key: "mailchimp", CanonicalName: "Mailchimp", Category: domain.CategoryMarketing},
	{Key: "hubspot", CanonicalName: "HubSpot", Category: domain.CategoryMarketing},

	// Development
	{Key: "github", CanonicalName: "GitHub", Category: domain.CategoryDevelopment},
	{Key: "vercel", CanonicalName: "Vercel", Category: domain.CategoryDevelopment},
	{Key: "digitalocean", CanonicalName: "DigitalOcean", Category: domain.CategoryDevelopment},

	// Finance
	{Key: "quickbooks", CanonicalName: "QuickBooks", Category: domain.CategoryFinance},

	// Entertainment
	{Key: "netflix", CanonicalName: "Netflix", Category: domain.CategoryEntertainment},
	{Key: "spotify", CanonicalName: "Spotify", Category: domain.CategoryEntertainment},
	{Key: "disneyplus", CanonicalName: "Disney+", Category: domain.CategoryEntertainment},
	{Key: "youtube", CanonicalName: "YouTube", Category: domain.CategoryEntertainment},

	// Education
	{Key: "coursera", CanonicalName: "Coursera", Category: domain.CategoryEducation},
	{Key: "udemy", CanonicalName: "Udemy", Category: domain.CategoryEducation},
	{Key: "duolingo", CanonicalName: "Duolingo", Category: domain.CategoryEducation},

	// Apple receipts list subtotal, tax and total; only the total is the charge.
	{
		Key:           "email.apple.com",
		CanonicalName: "Apple",
		AmountPattern: regexp.MustCompile(`\b(?i:total)\s*:?\s*[$€£]?\s?(\d[\d,]*\.\d{2})(?:\s?(?P<currency>[A-Z]{3})\b)?`),
	},
}
