package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"mcc/internal/campaign"
	"mcc/internal/types"
)

// Palette taken from the console's amber brand color.
var (
	brandColor  = lipgloss.Color("#8a6a20")
	mutedColor  = lipgloss.Color("#8c8c8c")
	errorColor  = lipgloss.Color("#e53935")
	okColor     = lipgloss.Color("#d9a441")
	activeColor = lipgloss.Color("#4db6ac")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(brandColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	successStyle = lipgloss.NewStyle().Foreground(okColor)
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(activeColor)
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandColor).
			Padding(0, 1)
)

// printOutcome writes the status line for a workflow result.
func printOutcome(w io.Writer, out campaign.Outcome) {
	switch {
	case out.IsError():
		fmt.Fprintln(w, errorStyle.Render(out.Status))
	case out.State == campaign.StateSkipped:
		reason := "skipped"
		if out.Err != nil {
			reason = "skipped: " + out.Err.Error()
		}
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%s %s", out.Workflow, reason)))
	case out.Status != "":
		fmt.Fprintln(w, successStyle.Render(out.Status))
	}
}

// statusBadge colors a campaign status.
func statusBadge(s types.CampaignStatus) string {
	switch s {
	case types.StatusActive:
		return activeStyle.Render(string(s))
	case types.StatusComplete:
		return successStyle.Render(string(s))
	}
	return mutedStyle.Render(string(s))
}

// renderSummary draws the dashboard counters.
func renderSummary(s campaign.Summary) string {
	avg := "--"
	if s.AvgSEOScore > 0 {
		avg = fmt.Sprintf("%d", s.AvgSEOScore)
	}
	cells := []string{
		cardStyle.Render(fmt.Sprintf("Active Campaigns\n%s", titleStyle.Render(fmt.Sprintf("%d", s.Active)))),
		cardStyle.Render(fmt.Sprintf("Content Pieces\n%s", titleStyle.Render(fmt.Sprintf("%d", s.ContentPieces)))),
		cardStyle.Render(fmt.Sprintf("Avg SEO Score\n%s", titleStyle.Render(avg))),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// campaignMarkdown renders a campaign as a review document.
func campaignMarkdown(c types.Campaign) string {
	var sb strings.Builder
	name := c.Name
	if name == "" {
		name = "Campaign Review"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	fmt.Fprintf(&sb, "*%s* · created %s · `%s`\n\n", c.Status, c.CreatedAt, c.ID)
	fmt.Fprintf(&sb, "**Objective:** %s  \n**Audience:** %s  \n**Industry:** %s  \n**Platforms:** %s\n\n",
		c.Objective, c.Audience, c.Industry, strings.Join(c.Platforms, ", "))

	sb.WriteString("## Content\n\n")
	if len(c.ContentBlocks) == 0 {
		sb.WriteString("_No content blocks._\n\n")
	}
	for i, b := range c.ContentBlocks {
		title := b.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&sb, "### %d. %s (%s)\n\n", i, title, b.Platform)
		if b.ContentType != "" {
			fmt.Fprintf(&sb, "_%s_ · %d words\n\n", b.ContentType, b.WordCount)
		} else {
			fmt.Fprintf(&sb, "%d words\n\n", b.WordCount)
		}
		fmt.Fprintf(&sb, "%s\n\n", b.Body)
		if b.Hashtags != "" {
			fmt.Fprintf(&sb, "`%s`\n\n", b.Hashtags)
		}
	}

	if seo := c.SEOAnalysis; seo != nil {
		sb.WriteString("## SEO Analysis\n\n")
		fmt.Fprintf(&sb, "**Content score:** %g\n\n", seo.ContentScore)
		if seo.MetaTitle != "" || seo.MetaDescription != "" {
			fmt.Fprintf(&sb, "**Meta title:** %s  \n**Meta description:** %s\n\n", seo.MetaTitle, seo.MetaDescription)
		}
		if len(seo.Keywords) > 0 {
			sb.WriteString("| Keyword | Volume | Difficulty | Recommendation |\n|---|---|---|---|\n")
			for _, k := range seo.Keywords {
				fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", k.Keyword, k.SearchVolume, k.Difficulty, k.Recommendation)
			}
			sb.WriteString("\n")
		}
		for _, tip := range seo.OptimizationTips {
			fmt.Fprintf(&sb, "- %s\n", tip)
		}
		for _, g := range seo.CompetitorGaps {
			fmt.Fprintf(&sb, "- **Gap:** %s → %s\n", g.Gap, g.Opportunity)
		}
		sb.WriteString("\n")
	}

	if len(c.Graphics) > 0 {
		sb.WriteString("## Graphics\n\n")
		for _, g := range c.Graphics {
			fmt.Fprintf(&sb, "- %s (%s %s) %s\n", g.FileURL, g.Platform, g.Dimensions, g.GraphicDescription)
		}
		sb.WriteString("\n")
	}

	if vb := c.VideoBrief; vb != nil {
		fmt.Fprintf(&sb, "## Video Brief: %s\n\n", vb.VideoTitle)
		if vb.ConceptOverview != "" {
			fmt.Fprintf(&sb, "%s\n\n", vb.ConceptOverview)
		}
		fmt.Fprintf(&sb, "**Duration:** %s · **Platform:** %s\n\n", vb.TargetDuration, vb.TargetPlatform)
		for _, s := range vb.Scenes {
			fmt.Fprintf(&sb, "%d. %s", s.SceneNumber, s.Description)
			if s.Narration != "" {
				fmt.Fprintf(&sb, " (\"%s\")", s.Narration)
			}
			sb.WriteString("\n")
		}
		if vb.MusicSuggestions != "" {
			fmt.Fprintf(&sb, "\n**Music:** %s\n", vb.MusicSuggestions)
		}
	}
	return sb.String()
}

// renderMarkdown renders md for the terminal, falling back to plain text
// when no renderer can be built.
func renderMarkdown(md string, plain bool) string {
	if plain {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
