// Package pipeline orchestrates one run end to end, from catalog resolution
// through media acquisition, subtitle selection or transcription, and the
// final mux into the output directory.
package pipeline
