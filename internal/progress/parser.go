package progress

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Phase is the value of the "progress" key.
type Phase int

const (
	Continue Phase = iota // More snapshots follow.
	End                   // Terminal snapshot for the stream.
)

func (p Phase) String() string {
	switch p {
	case Continue:
		return "continue"
	case End:
		return "end"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// ParsePhase converts the wire value of the "progress" key. Matching is
// case-sensitive.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "continue":
		return Continue, nil
	case "end":
		return End, nil
	default:
		return 0, ErrUnknownPhase
	}
}

// Snapshot is one decoded progress observation.
type Snapshot struct {
	Frame uint64
	Phase Phase
}

// Keys required to build a Snapshot.
const (
	KeyFrame    = "frame"
	KeyProgress = "progress"
)

// Sentinel causes carried by [ProtocolError].
var (
	ErrMissingKey     = errors.New("missing key")
	ErrMalformedValue = errors.New("malformed value")
	ErrUnknownPhase   = errors.New("unknown progress value")
)

// ProtocolError reports a progress stream that broke the key=value contract.
type ProtocolError struct {
	Key   string
	Value string
	Err   error
}

func (e *ProtocolError) Error() string {
	if errors.Is(e.Err, ErrMissingKey) {
		return fmt.Sprintf("progress protocol: %v %q", e.Err, e.Key)
	}
	return fmt.Sprintf("progress protocol: %v for %q: %q", e.Err, e.Key, e.Value)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// Parse reads r line by line and calls observe once per decoded snapshot,
// in stream order. observe returns before the next line is read.
//
// Parse returns nil when r reaches EOF; a buffer left incomplete at EOF is
// dropped. The first protocol violation stops parsing and is returned as a
// *ProtocolError. Read errors from r are returned as-is.
func Parse(r io.Reader, observe func(Snapshot)) error {
	sc := bufio.NewScanner(r)
	buf := make(map[string]string)

	for sc.Scan() {
		key, value, ok := splitPair(sc.Text())
		if !ok {
			continue
		}
		buf[key] = value

		if key != KeyProgress {
			continue
		}
		snap, err := snapshotFrom(buf)
		if err != nil {
			return err
		}
		if observe != nil {
			observe(snap)
		}
		clear(buf)
	}
	return sc.Err()
}

// splitPair splits "key=value" on the first '=' and trims both sides.
func splitPair(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(value), true
}

func snapshotFrom(buf map[string]string) (Snapshot, error) {
	rawFrame, ok := buf[KeyFrame]
	if !ok {
		return Snapshot{}, &ProtocolError{Key: KeyFrame, Err: ErrMissingKey}
	}
	rawPhase, ok := buf[KeyProgress]
	if !ok {
		return Snapshot{}, &ProtocolError{Key: KeyProgress, Err: ErrMissingKey}
	}

	frame, err := strconv.ParseUint(rawFrame, 10, 64)
	if err != nil {
		return Snapshot{}, &ProtocolError{Key: KeyFrame, Value: rawFrame, Err: ErrMalformedValue}
	}
	phase, err := ParsePhase(rawPhase)
	if err != nil {
		return Snapshot{}, &ProtocolError{Key: KeyProgress, Value: rawPhase, Err: err}
	}
	return Snapshot{Frame: frame, Phase: phase}, nil
}
