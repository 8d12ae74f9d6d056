// Package markdown implements the per-file half of the corpus engine:
// frontmatter extraction (TOML and YAML dialects), path hierarchy resolution,
// and bounded filesystem loading. Everything here is a pure or per-file
// operation with no shared state, which is what lets the scanner fan it out
// across a worker pool.
package markdown
