package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mcc/internal/state"
	"mcc/internal/types"
)

var (
	brandName     string
	brandTagline  string
	brandVoice    string
	brandIndustry string
	brandColors   string
)

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Show or change the brand settings applied to new campaigns",
}

var brandShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved brand settings",
	Args:  cobra.NoArgs,
	RunE:  runBrandShow,
}

var brandSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the brand settings",
	Long: `Updates the brand settings. Only the flags given are changed.

Example:
  mcc brand set --name Acme --tagline "Build more" --voice Bold`,
	Args: cobra.NoArgs,
	RunE: runBrandSet,
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the agent roster",
	Args:  cobra.NoArgs,
	RunE:  runAgents,
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show agent call statistics",
	Args:  cobra.NoArgs,
	RunE:  runUsage,
}

func init() {
	brandSetCmd.Flags().StringVar(&brandName, "name", "", "Brand name")
	brandSetCmd.Flags().StringVar(&brandTagline, "tagline", "", "Tagline")
	brandSetCmd.Flags().StringVar(&brandVoice, "voice", "", "Voice and tone")
	brandSetCmd.Flags().StringVar(&brandIndustry, "industry", "", "Industry (one of "+strings.Join(types.IndustryOptions, ", ")+")")
	brandSetCmd.Flags().StringVar(&brandColors, "colors", "", "Color notes")
}

func printBrand(cmd *cobra.Command, b types.BrandSettings) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render("Brand Settings"))
	rows := [][2]string{
		{"Brand name", b.BrandName},
		{"Tagline", b.Tagline},
		{"Voice", b.VoiceTone},
		{"Industry", b.Industry},
		{"Colors", b.ColorNotes},
	}
	for _, r := range rows {
		v := r[1]
		if v == "" {
			v = mutedStyle.Render("(unset)")
		}
		fmt.Fprintf(w, "  %-11s %s\n", r[0]+":", v)
	}
}

func runBrandShow(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	printBrand(cmd, c.orch.Brand())
	return nil
}

func runBrandSet(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	b := c.orch.Brand()
	flags := cmd.Flags()
	if flags.Changed("name") {
		b.BrandName = brandName
	}
	if flags.Changed("tagline") {
		b.Tagline = brandTagline
	}
	if flags.Changed("voice") {
		b.VoiceTone = brandVoice
	}
	if flags.Changed("industry") {
		b.Industry = brandIndustry
	}
	if flags.Changed("colors") {
		b.ColorNotes = brandColors
	}

	c.orch.Navigate(state.ScreenSettings)
	c.orch.SaveBrandSettings(b)
	printBrand(cmd, b)
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Saved"))
	return nil
}

func runAgents(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render("Agents"))
	fmt.Fprintf(w, "  provider: %s\n", c.cfg.Agents.Provider)
	for _, a := range c.registry.All() {
		kind := mutedStyle.Render("sub-agent")
		if a.Invocable {
			kind = activeStyle.Render("invocable")
		}
		fmt.Fprintf(w, "  %-22s %s  %s  %s\n", a.Name, a.ID, kind, mutedStyle.Render(a.Description))
	}
	return nil
}

func runUsage(cmd *cobra.Command, args []string) error {
	c, err := openConsole(context.Background(), false)
	if err != nil {
		return err
	}
	defer c.Close()

	stats := c.tracker.Stats()
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render("Agent Usage"))
	if stats.Total.Calls == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No agent calls recorded."))
		return nil
	}

	ids := make([]string, 0, len(stats.ByAgent))
	for id := range stats.ByAgent {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		cc := stats.ByAgent[id]
		fmt.Fprintf(w, "  %-22s calls=%d ok=%d failed=%d avg=%s\n",
			c.registry.Name(id), cc.Calls, cc.Successes, cc.Failures, cc.AvgLatency().Round(time.Millisecond))
	}
	t := stats.Total
	fmt.Fprintf(w, "  %-22s calls=%d ok=%d failed=%d avg=%s\n",
		"total", t.Calls, t.Successes, t.Failures, t.AvgLatency().Round(time.Millisecond))
	return nil
}
