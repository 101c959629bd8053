// Package services implements the driving port interfaces: the project
// lifecycle, the sniffing and assistant pipeline, and artifact export.
// All phase and lock rules are enforced here; adapters stay dumb.
package services
