// Package planner decides how a single conversion is encoded and builds the
// FilePlan that the ffmpeg package turns into a command line.
//
// Codec choice is policy data, not supervisor logic: an explicit override
// wins, otherwise the output extension selects a default codec, otherwise
// ffmpeg picks its own default for the container. Each codec may carry
// extra arguments (e.g. -tag:v hvc1 so Apple devices preview HEVC).
package planner
