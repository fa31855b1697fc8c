// Package mux packages the finished media and its subtitle track into the
// final Matroska container under the output directory.
package mux
