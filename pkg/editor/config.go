package editor

import "github.com/Dhanabal/svnwc/pkg/config"

// ConfigFromTyped builds a session Config from the layered configuration
// manager, so an update/switch session picks up system, user, and
// repository-level settings the same way any other command in this tree
// does, with a command-line override (SetTargetDepth below) still taking
// final precedence.
func ConfigFromTyped(tc *config.TypedConfig) Config {
	return Config{
		UseCommitTimes:         tc.UseCommitTimes(),
		AllowUnverObstructions: tc.AllowUnversionedObstructions(),
		Depth:                  ParseDepth(tc.UpdateDepth()),
		DepthIsSticky:          tc.StickyDepth(),
	}
}

// SetTargetDepth overrides the depth and stickiness ConfigFromTyped
// derived from the configuration hierarchy, for a command-line --depth
// flag that must win over any configured default.
func SetTargetDepth(cfg Config, depth Depth, sticky bool) Config {
	cfg.Depth = depth
	cfg.DepthIsSticky = sticky
	return cfg
}
