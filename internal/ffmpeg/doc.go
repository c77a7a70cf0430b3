// Package ffmpeg builds ffmpeg command lines and supervises one ffmpeg
// process per conversion.
//
// The supervisor starts ffmpeg with stdin closed and both output streams on
// OS pipes. Stdout carries the -progress key=value stream and is decoded by
// the progress package; stderr is captured whole as diagnostics. Both pipes
// are drained concurrently with each other and with waiting for exit, so a
// full pipe buffer on either side can never stall the child.
package ffmpeg
