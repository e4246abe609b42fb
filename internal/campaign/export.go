package campaign

import (
	"encoding/json"
	"fmt"
	"regexp"

	"mcc/internal/types"
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)

// ExportFile is a campaign ready to be written out.
type ExportFile struct {
	Filename string
	Data     []byte
}

// ExportCampaign renders c as 2-space indented JSON.
func ExportCampaign(c types.Campaign) (ExportFile, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return ExportFile{}, fmt.Errorf("failed to encode campaign %s: %w", c.ID, err)
	}
	return ExportFile{Filename: ExportFilename(c.Name), Data: data}, nil
}

// ExportFilename replaces every whitespace run in name with "_" and adds
// the "_campaign.json" suffix. An empty name exports as "campaign".
func ExportFilename(name string) string {
	if name == "" {
		name = "campaign"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + "_campaign.json"
}

// ImportCampaign decodes an exported campaign.
func ImportCampaign(data []byte) (types.Campaign, error) {
	var c types.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return types.Campaign{}, fmt.Errorf("failed to decode campaign: %w", err)
	}
	return c, nil
}
