// Package ffprobe inspects media containers via the ffprobe tool, used to
// verify subtitle tracks after muxing.
package ffprobe
