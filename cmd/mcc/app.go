package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mcc/internal/agent"
	"mcc/internal/campaign"
	"mcc/internal/config"
	"mcc/internal/logging"
	"mcc/internal/state"
	"mcc/internal/store"
	"mcc/internal/usage"
)

// sessionFileName keeps the selection between invocations.
const sessionFileName = "session.yaml"

// gatewayFactory builds the agent gateway. Tests replace it with a stub.
var gatewayFactory = agent.NewGateway

// console is everything one command needs, opened from the workspace.
type console struct {
	workspace string
	cfg       *config.Config
	blobs     store.BlobStore
	repo      *store.Repository
	state     *state.Synchronizer
	orch      *campaign.Orchestrator
	tracker   *usage.Tracker
	registry  *agent.Registry
}

// consoleSession is the view state carried across invocations.
type consoleSession struct {
	ActiveID string `yaml:"active_id,omitempty"`
	Screen   string `yaml:"screen,omitempty"`
}

func resolveWorkspace() (string, error) {
	ws := workspace
	if ws == "" {
		var err error
		ws, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve workspace: %w", err)
		}
	}
	return filepath.Abs(ws)
}

// openConsole loads config, opens the store and wires the orchestrator.
// needGateway is false for commands that never call an agent.
func openConsole(ctx context.Context, needGateway bool) (*console, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		path = filepath.Join(ws, config.DefaultFileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}

	if err := logging.Initialize(ws, cfg.Logging.Settings()); err != nil {
		cliLog().Warn("File logging disabled", zap.Error(err))
	}
	logging.Boot("Console opened: workspace=%s backend=%s", ws, cfg.Storage.Backend)

	blobs, err := store.Open(cfg.Storage, ws)
	if err != nil {
		return nil, err
	}
	repo := store.NewRepository(blobs)

	tracker, err := usage.NewTracker(ws)
	if err != nil {
		blobs.Close()
		return nil, err
	}

	c := &console{
		workspace: ws,
		cfg:       cfg,
		blobs:     blobs,
		repo:      repo,
		state:     state.New(repo),
		tracker:   tracker,
		registry:  agent.NewRegistry(cfg.Agents),
	}
	c.restoreSession()

	var gw agent.Gateway
	if needGateway {
		if err := cfg.Agents.Validate(); err != nil {
			c.Close()
			return nil, err
		}
		gw, c.registry, err = gatewayFactory(ctx, cfg.Agents, agent.Options{
			ArtifactDir: filepath.Join(ws, "artifacts"),
			Usage:       tracker,
		})
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create agent gateway: %w", err)
		}
	}

	c.orch = campaign.NewOrchestrator(campaign.OrchestratorConfig{
		Gateway:    gw,
		Registry:   c.registry,
		State:      c.state,
		Repository: repo,
		Activity:   &agent.Activity{},
	})
	return c, nil
}

func (c *console) sessionPath() string {
	return filepath.Join(c.workspace, sessionFileName)
}

func (c *console) restoreSession() {
	data, err := os.ReadFile(c.sessionPath())
	if err != nil {
		return
	}
	var s consoleSession
	if err := yaml.Unmarshal(data, &s); err != nil {
		cliLog().Debug("Ignoring unreadable session file", zap.Error(err))
		return
	}
	if s.ActiveID != "" {
		if _, err := c.state.Select(s.ActiveID); err != nil && !errors.Is(err, state.ErrCampaignNotFound) {
			cliLog().Debug("Could not restore selection", zap.Error(err))
		}
	}
	if sc, err := state.ParseScreen(s.Screen); err == nil {
		c.state.SetScreen(sc)
	}
}

func (c *console) saveSession() error {
	s := consoleSession{ActiveID: c.state.ActiveID(), Screen: string(c.state.Screen())}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath(), data, 0644)
}

// Close persists the session and usage, then closes the store.
func (c *console) Close() {
	if err := c.saveSession(); err != nil {
		cliLog().Warn("Failed to save session", zap.Error(err))
	}
	if err := c.tracker.Save(); err != nil {
		cliLog().Warn("Failed to save usage", zap.Error(err))
	}
	if err := c.blobs.Close(); err != nil {
		cliLog().Warn("Failed to close store", zap.Error(err))
	}
	logging.CloseAll()
}

// cliLog returns the command logger, or a no-op logger before PersistentPreRunE.
func cliLog() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
