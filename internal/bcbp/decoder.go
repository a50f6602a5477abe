package bcbp

import (
	"errors"
	"strings"
)

// ErrNoMatch is returned when no strategy recognizes a payload. It carries no
// reason on purpose: callers must treat a miss as a rejection to log, not as
// something to retry with mutated input.
var ErrNoMatch = errors.New("barcode does not match any known boarding pass format")

const (
	// minPayloadLength is the shortest normalized payload any strategy will
	// consider.
	minPayloadLength = 50

	// formatMarker is the BCBP format identifier ("M" + number of legs).
	formatMarker = 'M'
)

// strategy is a format recognizer: a pure function from a normalized payload
// to a record or a miss. Strategies are tried in priority order by the
// Decoder, so adding a carrier-specific layout means adding a strategy, not
// touching the dispatch.
type strategy interface {
	Name() string
	Decode(payload string) (*BoardingPass, bool)
}

// Decoder turns raw barcode payloads into BoardingPass records. It is
// stateless after construction and safe for concurrent use.
type Decoder struct {
	strategies []strategy
}

// NewDecoder creates a decoder with the default strategy order: the
// token-delimited extractor first, because its token-count heuristics resolve
// the majority of real-world space-padded passes, then the strict fixed-width
// extractor as the fallback for genuinely column-aligned payloads.
func NewDecoder() *Decoder {
	return &Decoder{
		strategies: []strategy{
			tokenStrategy{},
			fixedWidthStrategy{},
		},
	}
}

// Decode normalizes a raw scan and runs it through the strategy list,
// returning the first record produced or ErrNoMatch.
func (d *Decoder) Decode(raw string) (*BoardingPass, error) {
	payload := Normalize(raw)

	if len(payload) < minPayloadLength || payload[0] != formatMarker {
		return nil, ErrNoMatch
	}

	for _, s := range d.strategies {
		if pass, ok := s.Decode(payload); ok {
			return pass, nil
		}
	}

	return nil, ErrNoMatch
}

// Candidates extracts the lines of a scanner dump that look like BCBP
// payloads: after normalization they meet the minimum length and start with
// the format marker. Order is preserved.
func Candidates(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		normalized := Normalize(line)
		if len(normalized) >= minPayloadLength && normalized[0] == formatMarker {
			out = append(out, normalized)
		}
	}
	return out
}

// resolveSeat applies the infant rule shared by both strategies: an "INF"
// marker in the raw seat field means the passenger has no seat assignment.
func resolveSeat(rawSeat string) (seat string, infant bool) {
	if strings.Contains(rawSeat, "INF") {
		return "", true
	}
	return rawSeat, false
}
