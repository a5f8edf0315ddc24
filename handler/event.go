package handler

import (
	"encoding/json"

	"github.com/finopslab/eipreaper/config"
)

// Event is the invocation payload. Only dry_run is recognized; anything
// else in the payload is ignored.
type Event struct {
	DryRun *FlexBool `json:"dry_run,omitempty"`
}

// DryRunOverride returns the payload's dry-run flag, or nil when the
// payload omitted it and the environment should decide.
func (e Event) DryRunOverride() *bool {
	if e.DryRun == nil {
		return nil
	}
	v := bool(*e.DryRun)
	return &v
}

// FlexBool accepts JSON booleans and strings. Test events and EventBridge
// inputs commonly send "dry_run": "true" rather than a boolean; strings
// are coerced case-insensitively, matching the environment handling.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*b = FlexBool(v)
	case string:
		*b = FlexBool(config.TruthyString(v))
	default:
		*b = false
	}
	return nil
}
