package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mcc/internal/agent"
	"mcc/internal/campaign"
	"mcc/internal/state"
	"mcc/internal/types"
)

// Flag storage for campaign commands.
var (
	genObjective   string
	genAudience    string
	genIndustry    string
	genVoice       string
	genPlatforms   []string
	genKeywords    []string
	genCompetitors string

	listQuery  string
	listStatus string
	listSample bool

	showPlain bool

	exportDir    string
	exportStdout bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new campaign from a brief",
	Long: `Sends the campaign brief to the orchestrator agent. On success the new
campaign is stored, selected and shown.

Industry and brand voice default to the saved brand settings.

Example:
  mcc generate --objective "Launch X" --audience devs --platform Blog --platform LinkedIn`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns with dashboard counters",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [campaign-id]",
	Short: "Render a campaign for review (default: selected campaign)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

var selectCmd = &cobra.Command{
	Use:   "select <campaign-id>",
	Short: "Select the campaign later commands act on",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

var editBlockCmd = &cobra.Command{
	Use:   "edit-block <index> <body>",
	Short: "Replace the body of a content block on the selected campaign",
	Long: `Replaces the body of content block <index> (0-based, as shown by "mcc show")
and recomputes its word count. Use "-" as body to read it from stdin.`,
	Args: cobra.ExactArgs(2),
	RunE: runEditBlock,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the selected campaign as JSON",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	generateCmd.Flags().StringVar(&genObjective, "objective", "", "Campaign objective (required)")
	generateCmd.Flags().StringVar(&genAudience, "audience", "", "Target audience (required)")
	generateCmd.Flags().StringVar(&genIndustry, "industry", "", "Industry (default: brand industry)")
	generateCmd.Flags().StringVar(&genVoice, "voice", "", "Brand voice (default: brand voice tone)")
	generateCmd.Flags().StringSliceVarP(&genPlatforms, "platform", "p", nil, "Target platform, repeatable (one of "+strings.Join(types.PlatformOptions, ", ")+")")
	generateCmd.Flags().StringSliceVarP(&genKeywords, "keyword", "k", nil, "SEO keyword, repeatable")
	generateCmd.Flags().StringVar(&genCompetitors, "competitors", "", "Competitor URLs")

	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Case-insensitive name search")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", campaign.StatusFilterAll, "Status filter: "+strings.Join(campaign.StatusFilters, ", "))
	listCmd.Flags().BoolVar(&listSample, "sample", false, "Show the built-in sample campaigns instead")

	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Print raw markdown")

	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", ".", "Directory to write the export into")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the JSON to stdout instead of a file")
}

// commandContext cancels on SIGINT/SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// buildForm assembles the brief from flags over the brand defaults.
func buildForm(brand types.BrandSettings) types.CampaignFormData {
	form := types.NewFormData(brand)
	form.Objective = genObjective
	form.Audience = genAudience
	if genIndustry != "" {
		form.Industry = genIndustry
	}
	if genVoice != "" {
		form.BrandVoice = genVoice
	}
	for _, p := range genPlatforms {
		p = strings.TrimSpace(p)
		if p != "" && !containsString(form.Platforms, p) {
			form.Platforms = append(form.Platforms, p)
		}
	}
	for _, kw := range genKeywords {
		form.AddKeyword(kw)
	}
	form.CompetitorURLs = genCompetitors
	return form
}

// readAll reads r fully, dropping trailing newlines.
func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	c, err := openConsole(ctx, true)
	if err != nil {
		return err
	}
	defer c.Close()

	form := buildForm(c.orch.Brand())
	if err := form.Validate(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, mutedStyle.Render("Generating campaign with "+c.registry.Name(c.registry.ID(agent.RoleOrchestrator))+"..."))
	cliLog().Info("Generating campaign", zap.String("objective", form.Objective), zap.Strings("platforms", form.Platforms))

	out := c.orch.CreateCampaign(ctx, form)
	printOutcome(w, out)
	if !out.OK() {
		return fmt.Errorf("campaign generation failed: %w", out.Err)
	}
	fmt.Fprintln(w, renderMarkdown(campaignMarkdown(*out.Campaign), showPlain))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()
	c.orch.Navigate(state.ScreenDashboard)

	all := c.state.Campaigns()
	if listSample {
		all = campaign.SampleCampaigns()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render("Campaign Dashboard"))
	fmt.Fprintln(w, renderSummary(campaign.Summarize(all)))

	filtered := campaign.Filter(all, listQuery, listStatus)
	if len(filtered) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No campaigns found."))
		return nil
	}
	activeID := c.state.ActiveID()
	for _, cp := range filtered {
		marker := "  "
		if cp.ID == activeID {
			marker = activeStyle.Render("▸ ")
		}
		fmt.Fprintf(w, "%s%s  %s  %s  %s\n", marker, cp.ID, statusBadge(cp.Status), cp.Name,
			mutedStyle.Render(fmt.Sprintf("%s · %d blocks · %s", cp.CreatedAt, len(cp.ContentBlocks), strings.Join(cp.Platforms, ", "))))
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	var target types.Campaign
	if len(args) == 1 {
		out := c.orch.SelectCampaign(args[0])
		if !out.OK() {
			return out.Err
		}
		target = *out.Campaign
	} else {
		active, ok := c.state.Active()
		if !ok {
			return campaign.ErrNoActiveCampaign
		}
		target = active
		c.orch.Navigate(state.ScreenReview)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderMarkdown(campaignMarkdown(target), showPlain))
	return nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	out := c.orch.SelectCampaign(args[0])
	if !out.OK() {
		return out.Err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (%s)\n", activeStyle.Render(out.Campaign.Name), out.Campaign.ID)
	return nil
}

func runEditBlock(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid block index %q: %w", args[0], err)
	}
	body := args[1]
	if body == "-" {
		data, err := readAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		body = data
	}

	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	out := c.orch.EditContentBlock(index, body)
	if !out.OK() {
		return out.Err
	}
	b := out.Campaign.ContentBlocks[index]
	fmt.Fprintf(cmd.OutOrStdout(), "Updated block %d (%s): %d words\n", index, b.Platform, b.WordCount)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	file, err := c.orch.Export()
	if err != nil {
		return err
	}
	if exportStdout {
		_, err := cmd.OutOrStdout().Write(append(file.Data, '\n'))
		return err
	}

	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(exportDir, file.Filename)
	if err := os.WriteFile(path, file.Data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}
