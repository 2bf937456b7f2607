package domain

const (
	CategoryAITools       = "ai_tools"
	CategoryDesign        = "design"
	CategoryVideoEditing  = "video_editing"
	CategoryProductivity  = "productivity"
	CategoryAnalytics     = "analytics"
	CategoryMarketing     = "marketing"
	CategoryDevelopment   = "development"
	CategoryFinance       = "finance"
	CategoryEntertainment = "entertainment"
	CategoryEducation     = "education"
	CategoryOther         = "other"
)

// Categories lists the closed category set in declaration order, "other" last.
var Categories = []string{
	CategoryAITools,
	CategoryDesign,
	CategoryVideoEditing,
	CategoryProductivity,
	CategoryAnalytics,
	CategoryMarketing,
	CategoryDevelopment,
	CategoryFinance,
	CategoryEntertainment,
	CategoryEducation,
	CategoryOther,
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}
