// Package fileio reads generated files and golden fixtures for comparison.
//
// # Usage
//
// Read a file, dropping its first line (typically a timestamped
// "automatically generated" header):
//
//	body, err := fileio.Contents("expected/Point2.cpp", true)
//	if fileio.IsCannotOpenFile(err) {
//	    // the path does not exist or is not readable
//	}
//
// A Reader can be pointed at any afero filesystem, which keeps tests off disk:
//
//	r := fileio.NewReader(afero.NewMemMapFs())
package fileio
