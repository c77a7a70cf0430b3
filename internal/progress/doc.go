// Package progress decodes the key=value status stream that ffmpeg writes
// when started with -progress. Lines accumulate into a buffer until a
// "progress" key arrives; each such key yields exactly one [Snapshot].
package progress
