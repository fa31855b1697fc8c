// Package language maps between ISO 639-1 and ISO 639-2 language codes and
// display names for subtitle track tagging and sub-language filters.
package language
