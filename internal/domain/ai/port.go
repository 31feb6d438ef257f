package ai

import "context"

// Request carries one creative to the vision model. Image is a base64 data
// URL. UploadYear is the year the creative was uploaded, which anchors the
// copyright check. ManualRegions is only set on re-analysis, when
// user-adjusted geometry must be handed back to the model.
type Request struct {
	Image           string         `json:"image"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	Format          string         `json:"format"`
	VisualType      string         `json:"visualType"`
	UploadYear      int            `json:"uploadYear"`
	ManualRegions   map[string]Box `json:"manualRegions,omitempty"`
	PreserveRegions bool           `json:"preserveRegions,omitempty"`
}

type Client interface {
	Analyze(ctx context.Context, req Request) (*Analysis, error)
}
