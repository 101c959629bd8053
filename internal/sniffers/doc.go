// Package sniffers contains the per-format schema sniffers.
//
// Each subpackage implements driven.Sniffer for one sample format (CSV,
// JSON, XML), converting raw file text into the canonical header/lines
// SchemaDocument. Sniffers are selected by file extension through
// services.SnifferRegistry.
//
// Sniffers do structural inference only. They never guess types beyond
// what the literal encoding carries; the assistant's analysis phases
// assign richer type/sample metadata later.
package sniffers
