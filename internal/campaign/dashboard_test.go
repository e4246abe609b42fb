package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mcc/internal/types"
)

func ids(cs []types.Campaign) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	samples := SampleCampaigns()
	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{"everything", "", StatusFilterAll, []string{"s1", "s2", "s3", "s4"}},
		{"empty status means all", "", "", []string{"s1", "s2", "s3", "s4"}},
		{"case-insensitive search", "LAUNCH", StatusFilterAll, []string{"s1"}},
		{"status only", "", "active", []string{"s1", "s4"}},
		{"search and status", "campaign", "active", []string{"s4"}},
		{"no match", "zzz", StatusFilterAll, []string{}},
		{"draft", "", "draft", []string{"s3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(samples, tt.query, tt.status)))
		})
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(SampleCampaigns())
	// (82 + 91 + 76) / 3 = 83
	assert.Equal(t, Summary{Total: 4, Active: 2, ContentPieces: 4, AvgSEOScore: 83}, got)

	assert.Equal(t, Summary{}, Summarize(nil))

	unscored := []types.Campaign{{Status: types.StatusDraft, SEOAnalysis: &types.SEOAnalysis{}}}
	assert.Equal(t, Summary{Total: 1}, Summarize(unscored))
}

func TestSampleCampaigns_FreshCopies(t *testing.T) {
	a := SampleCampaigns()
	a[0].Name = "changed"
	assert.Equal(t, "Q1 Product Launch - Wellness Line", SampleCampaigns()[0].Name)
}
