// Package config loads and watches the Interlace configuration.
//
// Configuration lives in a single TOML file with an [editor] section for
// editing behavior and a [languages] table declaring the grammars the
// editor can bind. Load reads and validates a file, Default supplies the
// built-in fallback, and Watcher reloads on file changes so a running
// editor picks up new language declarations without restarting.
package config
