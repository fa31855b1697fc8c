// Package subtitles implements subtitle acquisition and normalization: the
// selector that prefers manually authored tracks, the transcription-backed
// generator used when none exist, advertisement cue cleanup, and the
// two-pass normalizer (structural reconstruction followed by strict
// validation) that every track passes before muxing.
package subtitles
