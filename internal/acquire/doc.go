// Package acquire downloads the media assets for a run: the selected or
// best-quality stream, a standalone audio asset when the selection carries
// none, and the local merge that joins them.
package acquire
