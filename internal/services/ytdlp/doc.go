// Package ytdlp adapts the yt-dlp command line tool as the remote media
// source client: format catalog listing, title lookup, media fetches, and
// manual subtitle retrieval. Its textual output is treated as a wire format
// and parsed elsewhere.
package ytdlp
