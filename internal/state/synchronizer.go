// Package state holds the in-memory campaign list, the active campaign and
// the presentation view, and keeps the durable store in step with them.
package state

import (
	"errors"
	"fmt"
	"sync"

	"mcc/internal/logging"
	"mcc/internal/store"
	"mcc/internal/types"
)

// ErrCampaignNotFound is returned when an id is not in the list.
var ErrCampaignNotFound = errors.New("campaign not found")

// Screen is the presentation view currently shown.
type Screen string

const (
	ScreenDashboard Screen = "dashboard"
	ScreenBuilder   Screen = "builder"
	ScreenReview    Screen = "review"
	ScreenSettings  Screen = "settings"
)

// Screens lists every valid screen.
var Screens = []Screen{ScreenDashboard, ScreenBuilder, ScreenReview, ScreenSettings}

// ParseScreen validates a screen name.
func ParseScreen(s string) (Screen, error) {
	for _, sc := range Screens {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("unknown screen %q", s)
}

// Synchronizer owns the campaign list and the active campaign.
//
// Every mutation persists the full list before returning, and after a
// successful mutation the active campaign is deep-equal to its list entry.
// Callers only ever see copies.
type Synchronizer struct {
	mu        sync.RWMutex
	repo      *store.Repository
	campaigns []types.Campaign
	activeID  string
	screen    Screen
	status    string
}

// New loads the persisted list. repo may be nil.
func New(repo *store.Repository) *Synchronizer {
	if repo == nil {
		repo = store.NewRepository(nil)
	}
	list := repo.LoadCampaigns()
	logging.StateDebug("Loaded %d campaigns", len(list))
	return &Synchronizer{
		repo:      repo,
		campaigns: list,
		screen:    ScreenDashboard,
	}
}

// Campaigns returns a copy of the list, newest first.
func (s *Synchronizer) Campaigns() []types.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Campaign, len(s.campaigns))
	for i, c := range s.campaigns {
		out[i] = c.Clone()
	}
	return out
}

// Get returns a copy of the campaign with the given id.
func (s *Synchronizer) Get(id string) (types.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return types.Campaign{}, fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
	}
	return s.campaigns[i].Clone(), nil
}

// Active returns a copy of the active campaign.
func (s *Synchronizer) Active() (types.Campaign, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(s.activeID)
	if i < 0 {
		return types.Campaign{}, false
	}
	return s.campaigns[i].Clone(), true
}

// ActiveID returns the id of the active campaign, or "".
func (s *Synchronizer) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Prepend adds a new campaign at the head of the list, makes it active and
// persists the list.
func (s *Synchronizer) Prepend(c types.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns = append([]types.Campaign{c.Clone()}, s.campaigns...)
	s.activeID = c.ID
	s.persistLocked()
	logging.StateDebug("Prepended campaign %s (%d total)", c.ID, len(s.campaigns))
}

// Update replaces the entry with the same id, persists the list and makes
// the campaign active.
func (s *Synchronizer) Update(c types.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(c.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCampaignNotFound, c.ID)
	}
	s.campaigns[i] = c.Clone()
	s.activeID = c.ID
	s.persistLocked()
	return nil
}

// Modify applies fn to the freshest value of campaign id under the lock and
// stores the result. The active reference is left where it is: if it points
// at id it now sees the update, otherwise the selection is kept.
func (s *Synchronizer) Modify(id string, fn func(*types.Campaign)) (types.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return types.Campaign{}, fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
	}
	updated := s.campaigns[i].Clone()
	fn(&updated)
	updated.ID = id
	s.campaigns[i] = updated
	s.persistLocked()
	return updated.Clone(), nil
}

// Select makes id the active campaign.
func (s *Synchronizer) Select(id string) (types.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return types.Campaign{}, fmt.Errorf("%w: %s", ErrCampaignNotFound, id)
	}
	s.activeID = id
	return s.campaigns[i].Clone(), nil
}

// ClearActive drops the active reference.
func (s *Synchronizer) ClearActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

// =============================================================================
// VIEW STATE
// =============================================================================

// Screen returns the current screen.
func (s *Synchronizer) Screen() Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

// SetScreen switches the current screen.
func (s *Synchronizer) SetScreen(sc Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = sc
}

// Status returns the current status message.
func (s *Synchronizer) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetStatus replaces the status message. An empty message dismisses it.
func (s *Synchronizer) SetStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}

func (s *Synchronizer) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.campaigns {
		if s.campaigns[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Synchronizer) persistLocked() {
	s.repo.SaveCampaigns(s.campaigns)
}
