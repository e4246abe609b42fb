package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mcc/internal/agent"
	"mcc/internal/config"
	"mcc/internal/types"
	"mcc/internal/usage"
)

const testConfig = `agents:
  provider: http
  base_url: http://agents.invalid/api
storage:
  backend: file
  path: data
logging:
  level: error
`

// setupWorkspace points the CLI at a fresh workspace and restores globals afterwards.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	logger = zap.NewNop()
	t.Setenv("MCC_STORE_PATH", "")
	t.Setenv("MCC_AGENT_BASE_URL", "")

	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, config.DefaultFileName), []byte(testConfig), 0644))
	workspace = ws

	t.Cleanup(func() {
		workspace = ""
		configPath = ""
		gatewayFactory = agent.NewGateway
		genObjective, genAudience, genIndustry, genVoice, genCompetitors = "", "", "", "", ""
		genPlatforms, genKeywords = nil, nil
		listQuery, listStatus, listSample = "", "all", false
		showPlain = false
		exportDir, exportStdout = ".", false
		graphicsPrompt, videoPrompt = "", ""
	})
	return ws
}

// stubAgents replaces the gateway with canned replies keyed by role.
// Calls still flow through the tracing wrapper so usage is recorded.
func stubAgents(t *testing.T, prompts *[]string) {
	t.Helper()
	gatewayFactory = func(ctx context.Context, cfg config.AgentsConfig, opts agent.Options) (agent.Gateway, *agent.Registry, error) {
		reg := agent.NewRegistry(cfg)
		base := agent.GatewayFunc(func(ctx context.Context, prompt, agentID string) (*agent.Response, error) {
			if prompts != nil {
				*prompts = append(*prompts, prompt)
			}
			switch agentID {
			case reg.ID(agent.RoleOrchestrator):
				return &agent.Response{Success: true, Response: map[string]any{
					"result": map[string]any{
						"campaign_title": "Acme Spring Launch",
						"content_blocks": []any{
							map[string]any{"platform": "Blog", "title": "Why Acme", "body": "Acme makes widgets better", "hashtags": []any{"#acme", "#spring"}},
							map[string]any{"platform": "LinkedIn", "body": "Meet Acme", "word_count": 2},
						},
						"seo_analysis": map[string]any{"content_score": 88, "keywords": []any{"widgets"}},
					},
				}}, nil
			case reg.ID(agent.RoleGraphicDesigner):
				return &agent.Response{
					Success:       true,
					Response:      map[string]any{"graphic_description": "Hero banner", "platform": "Blog"},
					ModuleOutputs: &agent.ModuleOutputs{ArtifactFiles: []agent.ArtifactFile{{FileURL: "https://cdn.example/hero.png"}}},
				}, nil
			case reg.ID(agent.RoleVideoBrief):
				return &agent.Response{Success: true, Response: `{"video_title":"Spring Teaser","scenes":[{"description":"Open on widgets"}]}`}, nil
			}
			return &agent.Response{Success: false, Error: "unknown agent"}, nil
		})
		return agent.NewTracingGateway(base, reg, opts.Usage), reg, nil
	}
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	return cmd, buf
}

func generateAcme(t *testing.T) {
	t.Helper()
	genObjective = "Launch the spring widget line"
	genAudience = "Small workshops"
	genPlatforms = []string{"Blog", "LinkedIn"}
	genKeywords = []string{"widgets"}
	showPlain = true

	cmd, buf := newTestCmd()
	require.NoError(t, runGenerate(cmd, nil))
	require.Contains(t, buf.String(), "Campaign generated successfully")
}

func loadSession(t *testing.T, ws string) consoleSession {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ws, sessionFileName))
	require.NoError(t, err)
	var s consoleSession
	require.NoError(t, yaml.Unmarshal(data, &s))
	return s
}

func TestGenerateStoresAndSelectsCampaign(t *testing.T) {
	ws := setupWorkspace(t)
	var prompts []string
	stubAgents(t, &prompts)

	generateAcme(t)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Objective: Launch the spring widget line")
	assert.Contains(t, prompts[0], "Platforms: Blog, LinkedIn")

	s := loadSession(t, ws)
	assert.NotEmpty(t, s.ActiveID)
	assert.Equal(t, "review", s.Screen)

	// A second process sees the same campaign list and selection.
	cmd, buf := newTestCmd()
	require.NoError(t, runList(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "Acme Spring Launch")
	assert.Contains(t, out, s.ActiveID)

	cmd, buf = newTestCmd()
	require.NoError(t, runShow(cmd, nil))
	assert.Contains(t, buf.String(), "# Acme Spring Launch")
	assert.Contains(t, buf.String(), "#acme #spring")
}

func TestGenerateRejectsIncompleteBrief(t *testing.T) {
	setupWorkspace(t)
	var prompts []string
	stubAgents(t, &prompts)

	genObjective = "Launch"
	cmd, _ := newTestCmd()
	err := runGenerate(cmd, nil)

	var formErr *types.FormError
	require.ErrorAs(t, err, &formErr)
	assert.Empty(t, prompts, "agent must not be called for an invalid brief")
}

func TestGenerateFailureReturnsError(t *testing.T) {
	setupWorkspace(t)
	gatewayFactory = func(ctx context.Context, cfg config.AgentsConfig, opts agent.Options) (agent.Gateway, *agent.Registry, error) {
		return agent.GatewayFunc(func(ctx context.Context, prompt, agentID string) (*agent.Response, error) {
			return &agent.Response{Success: false, Error: "quota exceeded"}, nil
		}), agent.NewRegistry(cfg), nil
	}

	genObjective = "Launch"
	genAudience = "Everyone"
	genPlatforms = []string{"Blog"}
	cmd, buf := newTestCmd()
	err := runGenerate(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Error: quota exceeded")

	cmd, buf = newTestCmd()
	require.NoError(t, runList(cmd, nil))
	assert.Contains(t, buf.String(), "No campaigns found.")
}

func TestEnrichMergesBothResults(t *testing.T) {
	ws := setupWorkspace(t)
	stubAgents(t, nil)
	generateAcme(t)

	cmd, buf := newTestCmd()
	require.NoError(t, runEnrich(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "Graphics generated successfully")
	assert.Contains(t, out, "Video brief generated successfully")

	exportStdout = true
	cmd, buf = newTestCmd()
	require.NoError(t, runExport(cmd, nil))

	var exported types.Campaign
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	require.Len(t, exported.Graphics, 1)
	assert.Equal(t, "https://cdn.example/hero.png", exported.Graphics[0].FileURL)
	require.NotNil(t, exported.VideoBrief)
	assert.Equal(t, "Spring Teaser", exported.VideoBrief.VideoTitle)
	assert.Equal(t, 1, exported.VideoBrief.Scenes[0].SceneNumber)

	// Usage was recorded through the tracing gateway and saved on close.
	tracker, err := usage.NewTracker(ws)
	require.NoError(t, err)
	assert.Equal(t, int64(3), tracker.Stats().Total.Calls)
}

func TestGraphicsWithoutSelectionIsSkipped(t *testing.T) {
	setupWorkspace(t)
	stubAgents(t, nil)

	cmd, buf := newTestCmd()
	err := runGraphics(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "skipped")
}

func TestSelectUnknownCampaign(t *testing.T) {
	setupWorkspace(t)
	cmd, _ := newTestCmd()
	if err := runSelect(cmd, []string{"missing"}); err == nil {
		t.Fatal("expected error selecting an unknown campaign")
	}
}

func TestEditBlockAndExportFile(t *testing.T) {
	ws := setupWorkspace(t)
	stubAgents(t, nil)
	generateAcme(t)

	cmd, _ := newTestCmd()
	cmd.SetIn(strings.NewReader("one two three four\n"))
	require.NoError(t, runEditBlock(cmd, []string{"0", "-"}))

	cmd, _ = newTestCmd()
	err := runEditBlock(cmd, []string{"9", "nope"})
	assert.Error(t, err, "out-of-range index must fail")

	cmd, _ = newTestCmd()
	assert.Error(t, runEditBlock(cmd, []string{"x", "nope"}))

	exportDir = filepath.Join(ws, "exports")
	cmd, buf := newTestCmd()
	require.NoError(t, runExport(cmd, nil))
	path := filepath.Join(exportDir, "Acme_Spring_Launch_campaign.json")
	assert.Contains(t, buf.String(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var exported types.Campaign
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, "one two three four", exported.ContentBlocks[0].Body)
	assert.Equal(t, 4, exported.ContentBlocks[0].WordCount)
}

func TestBrandSetAndShow(t *testing.T) {
	setupWorkspace(t)
	t.Cleanup(func() {
		brandSetCmd.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		})
	})

	require.NoError(t, brandSetCmd.Flags().Set("name", "Acme"))
	require.NoError(t, brandSetCmd.Flags().Set("voice", "Bold"))
	var buf bytes.Buffer
	brandSetCmd.SetOut(&buf)
	t.Cleanup(func() { brandSetCmd.SetOut(nil) })
	require.NoError(t, runBrandSet(brandSetCmd, nil))

	cmd, out := newTestCmd()
	require.NoError(t, runBrandShow(cmd, nil))
	assert.Contains(t, out.String(), "Acme")
	assert.Contains(t, out.String(), "Bold")
	assert.Contains(t, out.String(), "(unset)", "tagline was never set")

	// New briefs inherit the brand voice.
	var prompts []string
	stubAgents(t, &prompts)
	generateAcme(t)
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Brand Voice: Bold")
	assert.Contains(t, prompts[0], "Brand: Acme.")
}

func TestAgentsAndUsage(t *testing.T) {
	setupWorkspace(t)

	cmd, buf := newTestCmd()
	require.NoError(t, runAgents(cmd, nil))
	out := buf.String()
	for _, name := range []string{"Campaign Orchestrator", "Content Writer", "SEO Analyst", "Graphic Designer", "Video Brief"} {
		assert.Contains(t, out, name)
	}

	cmd, buf = newTestCmd()
	require.NoError(t, runUsage(cmd, nil))
	assert.Contains(t, buf.String(), "No agent calls recorded.")

	stubAgents(t, nil)
	generateAcme(t)

	cmd, buf = newTestCmd()
	require.NoError(t, runUsage(cmd, nil))
	assert.Contains(t, buf.String(), "Campaign Orchestrator")
	assert.Contains(t, buf.String(), "calls=1 ok=1 failed=0")
}

func TestListSampleFilters(t *testing.T) {
	setupWorkspace(t)
	listSample = true
	listStatus = "draft"

	cmd, buf := newTestCmd()
	require.NoError(t, runList(cmd, nil))
	out := buf.String()
	assert.Contains(t, out, "Campaign Dashboard")
	assert.Contains(t, out, "Holiday Sale Email Series")
	assert.NotContains(t, out, "Q1 Product Launch")
}

func TestBuildFormDefaultsFromBrand(t *testing.T) {
	t.Cleanup(func() { genObjective, genPlatforms, genIndustry = "", nil, "" })
	genObjective = "Grow"
	genPlatforms = []string{"Blog", " Blog ", ""}

	form := buildForm(types.BrandSettings{Industry: "Retail", VoiceTone: "Warm"})
	assert.Equal(t, "Retail", form.Industry)
	assert.Equal(t, "Warm", form.BrandVoice)
	assert.Equal(t, []string{"Blog"}, form.Platforms)

	genIndustry = "Finance"
	assert.Equal(t, "Finance", buildForm(types.BrandSettings{Industry: "Retail"}).Industry)
}
