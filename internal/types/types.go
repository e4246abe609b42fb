// Package types provides the campaign data model shared by the agent,
// store, state and campaign packages.
// It has no dependencies on the rest of the module so every layer can import it.
package types

import "strings"

// =============================================================================
// CAMPAIGN RECORD
// =============================================================================

// CampaignStatus is the lifecycle status of a campaign.
type CampaignStatus string

const (
	StatusDraft    CampaignStatus = "draft"
	StatusActive   CampaignStatus = "active"
	StatusComplete CampaignStatus = "complete"
)

// Campaign is the unit of work. The JSON layout is the persisted and exported
// format: camelCase at the top level, snake_case inside nested records.
type Campaign struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        CampaignStatus `json:"status"`
	CreatedAt     string         `json:"createdAt"` // YYYY-MM-DD
	Objective     string         `json:"objective"`
	Audience      string         `json:"audience"`
	Industry      string         `json:"industry"`
	Platforms     []string       `json:"platforms"`
	ContentBlocks []ContentBlock `json:"contentBlocks"`
	SEOAnalysis   *SEOAnalysis   `json:"seoAnalysis"`
	Graphics      []GraphicAsset `json:"graphics"`
	VideoBrief    *VideoBrief    `json:"videoBrief"`
}

// ContentBlock is one piece of platform copy.
type ContentBlock struct {
	Platform    string `json:"platform"`
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	WordCount   int    `json:"word_count"` // agent-reported until the first edit
	Hashtags    string `json:"hashtags"`
}

// SEOAnalysis is produced once at creation and never merged.
type SEOAnalysis struct {
	Keywords         []Keyword       `json:"keywords"`
	ContentScore     float64         `json:"content_score"`
	MetaTitle        string          `json:"meta_title"`
	MetaDescription  string          `json:"meta_description"`
	OptimizationTips []string        `json:"optimization_tips"`
	CompetitorGaps   []CompetitorGap `json:"competitor_gaps"`
}

// Keyword is a single SEO keyword recommendation.
type Keyword struct {
	Keyword        string `json:"keyword"`
	SearchVolume   string `json:"search_volume"`
	Difficulty     string `json:"difficulty"`
	Recommendation string `json:"recommendation"`
}

// CompetitorGap pairs a gap in competitor coverage with the opportunity it opens.
type CompetitorGap struct {
	Gap         string `json:"gap"`
	Opportunity string `json:"opportunity"`
}

// GraphicAsset is one generated image plus the designer's notes.
type GraphicAsset struct {
	FileURL            string `json:"file_url"`
	GraphicDescription string `json:"graphic_description"`
	DesignNotes        string `json:"design_notes"`
	Platform           string `json:"platform"`
	Dimensions         string `json:"dimensions"`
}

// VideoBrief is replaced wholesale on every generation.
type VideoBrief struct {
	VideoTitle            string  `json:"video_title"`
	ConceptOverview       string  `json:"concept_overview"`
	TargetDuration        string  `json:"target_duration"`
	TargetPlatform        string  `json:"target_platform"`
	Scenes                []Scene `json:"scenes"`
	MusicSuggestions      string  `json:"music_suggestions"`
	FormatRecommendations string  `json:"format_recommendations"`
}

// Scene is one shot in a video brief.
type Scene struct {
	SceneNumber int    `json:"scene_number"`
	Description string `json:"description"`
	Narration   string `json:"narration"`
	VisualNotes string `json:"visual_notes"`
	Duration    string `json:"duration"`
	ShotType    string `json:"shot_type"`
}

// Clone returns a deep copy so callers can mutate without aliasing the
// synchronizer's copy.
func (c Campaign) Clone() Campaign {
	out := c
	out.Platforms = cloneSlice(c.Platforms)
	out.ContentBlocks = cloneSlice(c.ContentBlocks)
	out.Graphics = cloneSlice(c.Graphics)
	if c.SEOAnalysis != nil {
		seo := *c.SEOAnalysis
		seo.Keywords = cloneSlice(seo.Keywords)
		seo.OptimizationTips = cloneSlice(seo.OptimizationTips)
		seo.CompetitorGaps = cloneSlice(seo.CompetitorGaps)
		out.SEOAnalysis = &seo
	}
	if c.VideoBrief != nil {
		vb := *c.VideoBrief
		vb.Scenes = cloneSlice(vb.Scenes)
		out.VideoBrief = &vb
	}
	return out
}

// cloneSlice copies in, keeping nil and empty distinct so the JSON form
// ([] vs null) survives a copy.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

// =============================================================================
// BRAND SETTINGS
// =============================================================================

// BrandSettings is the process-wide default context applied to every prompt.
type BrandSettings struct {
	BrandName  string `json:"brandName"`
	Tagline    string `json:"tagline"`
	VoiceTone  string `json:"voiceTone"`
	Industry   string `json:"industry"`
	ColorNotes string `json:"colorNotes"`
}

// DefaultBrandSettings returns the empty-valued settings used when nothing is stored.
func DefaultBrandSettings() BrandSettings {
	return BrandSettings{}
}

// =============================================================================
// CAMPAIGN FORM
// =============================================================================

// PlatformOptions lists the platforms offered by the campaign builder.
var PlatformOptions = []string{"Blog", "Instagram", "LinkedIn", "Twitter", "Email", "Ad"}

// IndustryOptions lists the industries offered by the builder and brand settings.
var IndustryOptions = []string{
	"Technology", "Health & Wellness", "Finance", "E-commerce", "Education", "SaaS",
	"Real Estate", "Food & Beverage", "Fashion", "Automotive", "Travel", "Entertainment", "Other",
}

// CampaignFormData is the ephemeral brief for a single generation request.
type CampaignFormData struct {
	Objective      string   `json:"objective"`
	Audience       string   `json:"audience"`
	Industry       string   `json:"industry"`
	BrandVoice     string   `json:"brandVoice"`
	Platforms      []string `json:"platforms"`
	Keywords       []string `json:"keywords"`
	CompetitorURLs string   `json:"competitorUrls"`
}

// NewFormData seeds a blank brief with the brand's industry and voice.
func NewFormData(brand BrandSettings) CampaignFormData {
	return CampaignFormData{
		Industry:   brand.Industry,
		BrandVoice: brand.VoiceTone,
		Platforms:  []string{},
		Keywords:   []string{},
	}
}

// CanSubmit reports whether the brief satisfies the create-campaign preconditions.
func (f CampaignFormData) CanSubmit() bool {
	return f.Validate() == nil
}

// Validate returns the first missing required field.
func (f CampaignFormData) Validate() error {
	switch {
	case strings.TrimSpace(f.Objective) == "":
		return &FormError{Field: "objective"}
	case strings.TrimSpace(f.Audience) == "":
		return &FormError{Field: "audience"}
	case len(f.Platforms) == 0:
		return &FormError{Field: "platforms"}
	}
	return nil
}

// TogglePlatform adds the platform if absent, removes it otherwise.
func (f *CampaignFormData) TogglePlatform(platform string) {
	for i, p := range f.Platforms {
		if p == platform {
			f.Platforms = append(f.Platforms[:i:i], f.Platforms[i+1:]...)
			return
		}
	}
	f.Platforms = append(f.Platforms, platform)
}

// AddKeyword appends a trimmed keyword unless it is empty or already present.
func (f *CampaignFormData) AddKeyword(kw string) bool {
	kw = strings.TrimSpace(kw)
	if kw == "" {
		return false
	}
	for _, existing := range f.Keywords {
		if existing == kw {
			return false
		}
	}
	f.Keywords = append(f.Keywords, kw)
	return true
}

// RemoveKeyword drops every occurrence of kw.
func (f *CampaignFormData) RemoveKeyword(kw string) {
	out := f.Keywords[:0:0]
	for _, existing := range f.Keywords {
		if existing != kw {
			out = append(out, existing)
		}
	}
	f.Keywords = out
}

// FormError names a required brief field that is missing.
type FormError struct {
	Field string
}

func (e *FormError) Error() string {
	return "campaign brief is missing " + e.Field
}
