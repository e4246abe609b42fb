package campaign

import (
	"math"
	"strings"

	"mcc/internal/types"
)

// StatusFilterAll matches every status in Filter.
const StatusFilterAll = "all"

// StatusFilters lists the dashboard filter choices in display order.
var StatusFilters = []string{StatusFilterAll, string(types.StatusDraft), string(types.StatusActive), string(types.StatusComplete)}

// Filter keeps campaigns whose name contains query (case-insensitive) and
// whose status matches. An empty status behaves like "all".
func Filter(campaigns []types.Campaign, query, status string) []types.Campaign {
	q := strings.ToLower(query)
	out := make([]types.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if status != "" && status != StatusFilterAll && string(c.Status) != status {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Summary holds the dashboard counters.
type Summary struct {
	Total         int
	Active        int
	ContentPieces int
	AvgSEOScore   int // 0 when no campaign has a score
}

// Summarize computes the dashboard counters. The SEO average is rounded and
// taken over campaigns with a non-zero content score only.
func Summarize(campaigns []types.Campaign) Summary {
	s := Summary{Total: len(campaigns)}
	var scoreSum float64
	var scored int
	for _, c := range campaigns {
		if c.Status == types.StatusActive {
			s.Active++
		}
		s.ContentPieces += len(c.ContentBlocks)
		if c.SEOAnalysis != nil && c.SEOAnalysis.ContentScore != 0 {
			scoreSum += c.SEOAnalysis.ContentScore
			scored++
		}
	}
	if scored > 0 {
		s.AvgSEOScore = int(math.Round(scoreSum / float64(scored)))
	}
	return s
}

// SampleCampaigns returns the built-in demo set shown when sample data is
// switched on. It is never persisted.
func SampleCampaigns() []types.Campaign {
	return []types.Campaign{
		{
			ID: "s1", Name: "Q1 Product Launch - Wellness Line", Status: types.StatusActive, CreatedAt: "2025-01-15",
			Objective: "Launch new wellness product line", Audience: "Health-conscious millennials", Industry: "Health & Wellness",
			Platforms:     []string{"Blog", "Instagram", "LinkedIn"},
			ContentBlocks: []types.ContentBlock{{Platform: "Blog", Title: "Sample", Body: "Content...", WordCount: 800}},
			SEOAnalysis:   &types.SEOAnalysis{ContentScore: 82},
			Graphics:      []types.GraphicAsset{},
		},
		{
			ID: "s2", Name: "Brand Awareness - Tech Summit 2025", Status: types.StatusComplete, CreatedAt: "2025-01-10",
			Objective: "Maximize brand visibility at tech summit", Audience: "CTOs and engineering leaders", Industry: "Technology",
			Platforms:     []string{"LinkedIn", "Twitter", "Email"},
			ContentBlocks: []types.ContentBlock{{Platform: "LinkedIn", Title: "Sample", Body: "Content...", WordCount: 300}},
			SEOAnalysis:   &types.SEOAnalysis{ContentScore: 91},
			Graphics:      []types.GraphicAsset{{FileURL: ""}},
			VideoBrief:    &types.VideoBrief{VideoTitle: "Summit Highlight Reel"},
		},
		{
			ID: "s3", Name: "Holiday Sale Email Series", Status: types.StatusDraft, CreatedAt: "2025-01-20",
			Objective: "Drive holiday season sales", Audience: "Existing customers aged 25-45", Industry: "E-commerce",
			Platforms:     []string{"Email", "Instagram", "Ad"},
			ContentBlocks: []types.ContentBlock{},
			Graphics:      []types.GraphicAsset{},
		},
		{
			ID: "s4", Name: "Sustainability Report Campaign", Status: types.StatusActive, CreatedAt: "2025-01-18",
			Objective: "Promote annual sustainability report", Audience: "Investors and eco-conscious consumers", Industry: "Finance",
			Platforms: []string{"Blog", "LinkedIn", "Twitter"},
			ContentBlocks: []types.ContentBlock{
				{Platform: "Blog", Title: "Sample", Body: "Content...", WordCount: 1200},
				{Platform: "LinkedIn", Title: "Sample", Body: "Content...", WordCount: 250},
			},
			SEOAnalysis: &types.SEOAnalysis{ContentScore: 76},
			Graphics:    []types.GraphicAsset{},
		},
	}
}
