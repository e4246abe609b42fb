package store

import (
	"encoding/json"

	"mcc/internal/logging"
	"mcc/internal/types"
)

// Durable keys.
const (
	KeyCampaigns     = "mcc_campaigns"
	KeyBrandSettings = "mcc_brand_settings"
)

// Repository reads and writes the two persisted records. A nil BlobStore
// is valid and behaves as a medium with nothing stored that accepts no writes.
type Repository struct {
	blobs BlobStore
}

// NewRepository wraps blobs, which may be nil.
func NewRepository(blobs BlobStore) *Repository {
	return &Repository{blobs: blobs}
}

// LoadCampaigns returns the stored list, or an empty list when nothing
// usable is stored.
func (r *Repository) LoadCampaigns() []types.Campaign {
	data, ok := r.get(KeyCampaigns)
	if !ok {
		return []types.Campaign{}
	}
	var list []types.Campaign
	if err := json.Unmarshal(data, &list); err != nil {
		logging.StoreWarn("Stored campaigns unreadable, using empty list: %v", err)
		return []types.Campaign{}
	}
	if list == nil {
		return []types.Campaign{}
	}
	return list
}

// SaveCampaigns persists the full list. Failures are logged and absorbed.
func (r *Repository) SaveCampaigns(list []types.Campaign) {
	if list == nil {
		list = []types.Campaign{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		logging.StoreError("Failed to encode campaigns: %v", err)
		return
	}
	r.put(KeyCampaigns, data)
	logging.StoreDebug("Saved %d campaigns (%d bytes)", len(list), len(data))
}

// LoadBrandSettings returns the stored settings merged over the defaults.
func (r *Repository) LoadBrandSettings() types.BrandSettings {
	settings := types.DefaultBrandSettings()
	data, ok := r.get(KeyBrandSettings)
	if !ok {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		logging.StoreWarn("Stored brand settings unreadable, using defaults: %v", err)
		return types.DefaultBrandSettings()
	}
	return settings
}

// SaveBrandSettings persists the settings. Failures are logged and absorbed.
func (r *Repository) SaveBrandSettings(settings types.BrandSettings) {
	data, err := json.Marshal(settings)
	if err != nil {
		logging.StoreError("Failed to encode brand settings: %v", err)
		return
	}
	r.put(KeyBrandSettings, data)
}

func (r *Repository) get(key string) ([]byte, bool) {
	if r == nil || r.blobs == nil {
		return nil, false
	}
	data, ok, err := r.blobs.Get(key)
	if err != nil {
		logging.StoreWarn("Read of %s failed: %v", key, err)
		return nil, false
	}
	return data, ok
}

func (r *Repository) put(key string, data []byte) {
	if r == nil || r.blobs == nil {
		return
	}
	if err := r.blobs.Put(key, data); err != nil {
		logging.StoreError("Write of %s failed: %v", key, err)
	}
}
