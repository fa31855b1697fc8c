// Package catalog parses the remote source's textual format listing into
// typed stream descriptors, filtering out unplayable entries and low
// resolution video-only streams.
package catalog
