package config

import (
	"fmt"
	"os"
)

const (
	EnvDocketPipelineTemplatePath   = "DOCKET_PIPELINE_TEMPLATE_PATH"
	EnvDocketPipelineArtifactPrefix = "DOCKET_PIPELINE_ARTIFACT_PREFIX"
	EnvDocketPipelineState          = "DOCKET_PIPELINE_STATE"
)

// PipelineConfig holds survey-specific pipeline settings: the table mapping
// opaque survey field ids to semantic names, the answer document template,
// and the option ids the payment gate and legal code derivation key on.
type PipelineConfig struct {
	TemplatePath      string            `toml:"template_path"`
	ArtifactPrefix    string            `toml:"artifact_prefix"`
	State             string            `toml:"state"`
	PaidFullOptionID  string            `toml:"paid_full_option_id"`
	AttemptedOptionID string            `toml:"attempted_option_id"`
	NoAttemptOptionID string            `toml:"no_attempt_option_id"`
	Fields            map[string]string `toml:"fields"`
}

// Merge overwrites non-zero fields from overlay. A non-nil Fields table
// replaces the existing table wholesale.
func (c *PipelineConfig) Merge(overlay *PipelineConfig) {
	if overlay.TemplatePath != "" {
		c.TemplatePath = overlay.TemplatePath
	}
	if overlay.ArtifactPrefix != "" {
		c.ArtifactPrefix = overlay.ArtifactPrefix
	}
	if overlay.State != "" {
		c.State = overlay.State
	}
	if overlay.PaidFullOptionID != "" {
		c.PaidFullOptionID = overlay.PaidFullOptionID
	}
	if overlay.AttemptedOptionID != "" {
		c.AttemptedOptionID = overlay.AttemptedOptionID
	}
	if overlay.NoAttemptOptionID != "" {
		c.NoAttemptOptionID = overlay.NoAttemptOptionID
	}
	if overlay.Fields != nil {
		c.Fields = overlay.Fields
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *PipelineConfig) Finalize() error {
	if c.TemplatePath == "" {
		c.TemplatePath = "templates/answer_packet.html"
	}
	if c.ArtifactPrefix == "" {
		c.ArtifactPrefix = "answer"
	}
	if c.State == "" {
		c.State = "Colorado"
	}

	if v := os.Getenv(EnvDocketPipelineTemplatePath); v != "" {
		c.TemplatePath = v
	}
	if v := os.Getenv(EnvDocketPipelineArtifactPrefix); v != "" {
		c.ArtifactPrefix = v
	}
	if v := os.Getenv(EnvDocketPipelineState); v != "" {
		c.State = v
	}

	if len(c.Fields) == 0 {
		return fmt.Errorf("fields table required")
	}
	if c.PaidFullOptionID == "" {
		return fmt.Errorf("paid_full_option_id required")
	}
	if c.NoAttemptOptionID == "" {
		return fmt.Errorf("no_attempt_option_id required")
	}
	return nil
}
