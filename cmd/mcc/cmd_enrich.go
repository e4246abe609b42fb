package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mcc/internal/campaign"
)

var (
	graphicsPrompt string
	videoPrompt    string
)

var graphicsCmd = &cobra.Command{
	Use:   "graphics",
	Short: "Generate graphics for the selected campaign",
	Long: `Asks the Graphic Designer agent for artwork. Returned files are appended
to the campaign's graphics; earlier graphics are kept.`,
	Args: cobra.NoArgs,
	RunE: runGraphics,
}

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Generate a video brief for the selected campaign",
	Long: `Asks the Video Brief agent for a production brief. The new brief
replaces any previous one.`,
	Args: cobra.NoArgs,
	RunE: runVideo,
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Generate graphics and a video brief concurrently",
	Args:  cobra.NoArgs,
	RunE:  runEnrich,
}

func init() {
	graphicsCmd.Flags().StringVar(&graphicsPrompt, "prompt", "", "Graphics prompt (default: derived from the campaign name)")
	videoCmd.Flags().StringVar(&videoPrompt, "prompt", "", "Video prompt (default: derived from the campaign name)")
	enrichCmd.Flags().StringVar(&graphicsPrompt, "graphics-prompt", "", "Graphics prompt")
	enrichCmd.Flags().StringVar(&videoPrompt, "video-prompt", "", "Video prompt")
}

func runGraphics(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	c, err := openConsole(ctx, true)
	if err != nil {
		return err
	}
	defer c.Close()

	out := c.orch.GenerateGraphics(ctx, graphicsPrompt)
	return reportEnrichment(cmd, out)
}

func runVideo(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	c, err := openConsole(ctx, true)
	if err != nil {
		return err
	}
	defer c.Close()

	out := c.orch.GenerateVideoBrief(ctx, videoPrompt)
	return reportEnrichment(cmd, out)
}

// runEnrich runs both enrichment workflows at once. Each merges into the
// freshest campaign value, so neither result is lost.
func runEnrich(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	c, err := openConsole(ctx, true)
	if err != nil {
		return err
	}
	defer c.Close()

	var graphics, video campaign.Outcome
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		graphics = c.orch.GenerateGraphics(gctx, graphicsPrompt)
		return nil
	})
	g.Go(func() error {
		video = c.orch.GenerateVideoBrief(gctx, videoPrompt)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	gErr := reportEnrichment(cmd, graphics)
	vErr := reportEnrichment(cmd, video)
	if gErr != nil {
		return gErr
	}
	return vErr
}

func reportEnrichment(cmd *cobra.Command, out campaign.Outcome) error {
	w := cmd.OutOrStdout()
	printOutcome(w, out)
	cliLog().Debug("Workflow finished",
		zap.String("workflow", string(out.Workflow)),
		zap.String("state", string(out.State)),
		zap.String("agent", out.AgentID))

	switch out.State {
	case campaign.StateSkipped:
		if out.Err != nil {
			return out.Err
		}
		return nil
	case campaign.StateFailed:
		return fmt.Errorf("%s workflow failed: %w", out.Workflow, out.Err)
	}

	if out.Campaign != nil {
		switch out.Workflow {
		case campaign.WorkflowGraphics:
			fmt.Fprintf(w, "%s now has %d graphics\n", out.Campaign.Name, len(out.Campaign.Graphics))
		case campaign.WorkflowVideo:
			if vb := out.Campaign.VideoBrief; vb != nil {
				fmt.Fprintf(w, "Video brief: %s (%d scenes)\n", vb.VideoTitle, len(vb.Scenes))
			}
		}
	}
	return nil
}
