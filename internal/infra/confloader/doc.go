// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader that supports multiple
// sources using koanf as the underlying library, plus an fsnotify based
// watcher for hot reload.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (LoadMap)
//  2. Environment variables (MULTIAGENT_SECTION_KEY)
//  3. Configuration file (YAML)
//  4. Default values
package confloader
