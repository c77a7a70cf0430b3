// Package probe asks ffprobe how many video frames an input holds. The
// count sizes each job's progress bar before encoding starts.
package probe
