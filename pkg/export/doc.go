// Package export provides functionality for exporting generated scenario
// maps to various formats: JSON for golden-file tests, SVG for visual
// debugging, and Tiled TMJ for loading a generated map into a map editor.
//
// The package offers both formatted (indented) and compact export options
// to accommodate different use cases, from human-readable output to
// space-efficient storage.
package export
