package campaign

import (
	"fmt"
	"strings"

	"mcc/internal/types"
)

// =============================================================================
// PROMPTS
// =============================================================================

const campaignInstruction = "Please generate content blocks for each platform and provide SEO analysis " +
	"including keywords, content score, meta tags, optimization tips, and competitor gaps."

// BuildCampaignPrompt assembles the orchestrator brief. Field order is fixed:
// objective, audience, industry, voice, platforms, keywords, then the
// optional competitor line and brand paragraph, then the instruction.
func BuildCampaignPrompt(form types.CampaignFormData, brand types.BrandSettings) string {
	var sb strings.Builder
	sb.WriteString("Create a comprehensive marketing campaign with the following brief:\n")
	fmt.Fprintf(&sb, "Objective: %s\n", form.Objective)
	fmt.Fprintf(&sb, "Target Audience: %s\n", form.Audience)
	fmt.Fprintf(&sb, "Industry: %s\n", form.Industry)
	fmt.Fprintf(&sb, "Brand Voice: %s\n", form.BrandVoice)
	fmt.Fprintf(&sb, "Platforms: %s\n", strings.Join(form.Platforms, ", "))
	fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(form.Keywords, ", "))
	if form.CompetitorURLs != "" {
		fmt.Fprintf(&sb, "Competitor URLs: %s", form.CompetitorURLs)
	}
	sb.WriteString(brandParagraph(brand))
	sb.WriteString("\n\n")
	sb.WriteString(campaignInstruction)
	return sb.String()
}

// brandParagraph is empty unless a brand name is set.
func brandParagraph(brand types.BrandSettings) string {
	if brand.BrandName == "" {
		return ""
	}
	return fmt.Sprintf("\nBrand: %s. Tagline: %s. Voice: %s. Colors: %s.",
		brand.BrandName, brand.Tagline, brand.VoiceTone, brand.ColorNotes)
}

// DefaultGraphicsPrompt is used when the caller leaves the graphics prompt empty.
func DefaultGraphicsPrompt(campaignName string) string {
	return "Create a marketing graphic for the campaign: " + campaignName
}

// DefaultVideoPrompt is used when the caller leaves the video prompt empty.
func DefaultVideoPrompt(campaignName string) string {
	return "Create a video brief for the campaign: " + campaignName
}
