// Package ffmpeg adapts the ffmpeg command line tool for subtitle format
// conversion, video/audio stream merging, and audio extraction for
// transcription.
package ffmpeg
