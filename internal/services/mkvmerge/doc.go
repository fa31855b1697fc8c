// Package mkvmerge adapts the mkvmerge tool for final container packaging:
// copying media streams unmodified while attaching tagged subtitle tracks.
package mkvmerge
