// Package campaign turns agent output into campaign records and drives the
// three generation workflows (create, graphics, video brief) against the
// agent gateway and the state synchronizer.
package campaign

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"mcc/internal/agent"
	"mcc/internal/normalize"
	"mcc/internal/types"
)

// maxFallbackNameRunes bounds the name derived from the objective when the
// agent gives no title.
const maxFallbackNameRunes = 50

// DefaultVideoTitle is used when the video agent omits a title.
const DefaultVideoTitle = "Untitled Video"

// IDGenerator issues campaign identifiers.
type IDGenerator interface {
	NewID() string
}

// Clock supplies the creation date.
type Clock interface {
	Now() time.Time
}

// UUIDGenerator issues random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Builder maps a brief plus normalized agent output to a Campaign.
type Builder struct {
	ids   IDGenerator
	clock Clock
}

// NewBuilder wires the id source and clock. Nil arguments fall back to
// UUIDGenerator and SystemClock.
func NewBuilder(ids IDGenerator, clock Clock) *Builder {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Builder{ids: ids, clock: clock}
}

// Build creates a new active campaign. Every field is read independently so
// one malformed field never aborts the build.
func (b *Builder) Build(form types.CampaignFormData, normalized map[string]any) types.Campaign {
	v := normalize.NewView(normalized)

	platforms := append([]string{}, form.Platforms...)

	return types.Campaign{
		ID:            b.ids.NewID(),
		Name:          v.String("campaign_title", fallbackName(form.Objective)),
		Status:        types.StatusActive,
		CreatedAt:     b.clock.Now().Format("2006-01-02"),
		Objective:     form.Objective,
		Audience:      form.Audience,
		Industry:      form.Industry,
		Platforms:     platforms,
		ContentBlocks: BuildContentBlocks(v),
		SEOAnalysis:   BuildSEOAnalysis(v),
		Graphics:      []types.GraphicAsset{},
		VideoBrief:    nil,
	}
}

func fallbackName(objective string) string {
	if utf8.RuneCountInString(objective) <= maxFallbackNameRunes {
		return objective
	}
	return string([]rune(objective)[:maxFallbackNameRunes])
}

// BuildContentBlocks reads content_blocks. Anything other than an array
// yields an empty list; non-object entries are dropped.
func BuildContentBlocks(v normalize.View) []types.ContentBlock {
	blocks := []types.ContentBlock{}
	items := v.Items("content_blocks")
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		bv := normalize.NewView(m)
		body := bv.String("body", "")
		blocks = append(blocks, types.ContentBlock{
			Platform:    bv.String("platform", ""),
			ContentType: bv.String("content_type", ""),
			Title:       bv.String("title", ""),
			Body:        body,
			WordCount:   bv.Int("word_count", WordCount(body)),
			Hashtags:    bv.Joined("hashtags", " ", ""),
		})
	}
	return blocks
}

// BuildSEOAnalysis reads seo_analysis. A missing or non-object value gives nil.
func BuildSEOAnalysis(v normalize.View) *types.SEOAnalysis {
	sv, ok := v.Object("seo_analysis")
	if !ok {
		return nil
	}

	seo := &types.SEOAnalysis{
		Keywords:         []types.Keyword{},
		ContentScore:     sv.Float("content_score", 0),
		MetaTitle:        sv.String("meta_title", ""),
		MetaDescription:  sv.String("meta_description", ""),
		OptimizationTips: sv.Strings("optimization_tips"),
		CompetitorGaps:   []types.CompetitorGap{},
	}
	if seo.OptimizationTips == nil {
		seo.OptimizationTips = []string{}
	}

	for _, item := range sv.Items("keywords") {
		switch t := item.(type) {
		case string:
			seo.Keywords = append(seo.Keywords, types.Keyword{Keyword: t})
		case map[string]any:
			kv := normalize.NewView(t)
			seo.Keywords = append(seo.Keywords, types.Keyword{
				Keyword:        kv.String("keyword", ""),
				SearchVolume:   kv.String("search_volume", ""),
				Difficulty:     kv.String("difficulty", ""),
				Recommendation: kv.String("recommendation", ""),
			})
		}
	}

	for _, item := range sv.Items("competitor_gaps") {
		switch t := item.(type) {
		case string:
			seo.CompetitorGaps = append(seo.CompetitorGaps, types.CompetitorGap{Gap: t})
		case map[string]any:
			gv := normalize.NewView(t)
			seo.CompetitorGaps = append(seo.CompetitorGaps, types.CompetitorGap{
				Gap:         gv.String("gap", ""),
				Opportunity: gv.String("opportunity", ""),
			})
		}
	}
	return seo
}

// BuildGraphics maps each artifact file to a graphic asset. The designer's
// description applies to every file of the same invocation.
func BuildGraphics(files []agent.ArtifactFile, v normalize.View) []types.GraphicAsset {
	out := make([]types.GraphicAsset, 0, len(files))
	for _, f := range files {
		out = append(out, types.GraphicAsset{
			FileURL:            f.FileURL,
			GraphicDescription: v.String("graphic_description", ""),
			DesignNotes:        v.String("design_notes", ""),
			Platform:           v.String("platform", ""),
			Dimensions:         v.String("dimensions", ""),
		})
	}
	return out
}

// BuildVideoBrief reads a full brief with defaults for every field.
func BuildVideoBrief(v normalize.View) *types.VideoBrief {
	scenes := []types.Scene{}
	for i, item := range v.Items("scenes") {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sv := normalize.NewView(m)
		scenes = append(scenes, types.Scene{
			SceneNumber: sv.Int("scene_number", i+1),
			Description: sv.String("description", ""),
			Narration:   sv.String("narration", ""),
			VisualNotes: sv.String("visual_notes", ""),
			Duration:    sv.String("duration", ""),
			ShotType:    sv.String("shot_type", ""),
		})
	}

	return &types.VideoBrief{
		VideoTitle:            v.String("video_title", DefaultVideoTitle),
		ConceptOverview:       v.String("concept_overview", ""),
		TargetDuration:        v.String("target_duration", ""),
		TargetPlatform:        v.String("target_platform", ""),
		Scenes:                scenes,
		MusicSuggestions:      v.String("music_suggestions", ""),
		FormatRecommendations: v.String("format_recommendations", ""),
	}
}

// EditContentBlock replaces the body of block index and recomputes its word
// count. It reports false, leaving c untouched, when index is out of range.
func EditContentBlock(c *types.Campaign, index int, body string) bool {
	if c == nil || index < 0 || index >= len(c.ContentBlocks) {
		return false
	}
	blocks := append([]types.ContentBlock(nil), c.ContentBlocks...)
	blocks[index].Body = body
	blocks[index].WordCount = WordCount(body)
	c.ContentBlocks = blocks
	return true
}

// WordCount counts whitespace-delimited tokens.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
