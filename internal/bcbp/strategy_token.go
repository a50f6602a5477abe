package bcbp

import "strings"

// Token positions within the space-delimited remainder, relative to any shift
// introduced by the indicator merge.
const (
	tokenRoute     = 1
	tokenFlight    = 2
	tokenComposite = 3

	// minRemainderTokens is the smallest token count the layout can carry:
	// indicator+booking, route, flight, date composite.
	minRemainderTokens = 4

	// minTokensForMerge is the empirical guard on the indicator merge: a lone
	// letter is only merged with its neighbor when at least this many tokens
	// are present before the merge.
	minTokensForMerge = 5

	// routeFieldWidth is origin (3) + destination (3) + airline (2).
	routeFieldWidth = 8
)

// validIndicators are the e-ticket letters that may legitimately appear as a
// lone token when a carrier inserts a stray space right after the indicator.
var validIndicators = map[byte]struct{}{
	'E': {},
	'M': {},
	'Z': {},
	'T': {},
	'B': {},
}

// tokenStrategy parses the space-padded layouts used by carriers that pad
// fields with spaces instead of respecting the fixed BCBP columns. The
// passenger name is still taken by position; only the remainder is tokenized.
type tokenStrategy struct{}

func (tokenStrategy) Name() string { return "token-delimited" }

func (tokenStrategy) Decode(payload string) (*BoardingPass, bool) {
	if len(payload) < minPayloadLength {
		return nil, false
	}

	// The name field is exactly columns [2,22); it may contain spaces, so it
	// must be sliced before the remainder is tokenized.
	name := strings.TrimSpace(payload[2:22])

	tokens := strings.Fields(payload[22:])
	if len(tokens) < minRemainderTokens {
		return nil, false
	}

	indicator, booking, shift := splitIndicator(tokens)

	compositeIdx := tokenComposite + shift
	if len(tokens) <= compositeIdx {
		return nil, false
	}

	route := tokens[tokenRoute+shift]
	if len(route) < routeFieldWidth {
		return nil, false
	}

	// Composite field: julian date (3) + cabin class (1) + seat (4) +
	// sequence (4). Only the julian date is mandatory.
	composite := tokens[compositeIdx]
	if len(composite) < 3 {
		return nil, false
	}
	julian := composite[:3]

	cabin := "Y"
	if len(composite) >= 4 {
		cabin = string(composite[3])
	}

	rawSeat := ""
	if len(composite) >= 8 {
		rawSeat = strings.TrimSpace(composite[4:8])
	}

	sequence := ""
	if len(composite) >= 12 {
		sequence = strings.TrimSpace(composite[8:12])
	}

	seat, infant := resolveSeat(rawSeat)

	conditional := ""
	if len(tokens) > compositeIdx+1 {
		conditional = strings.Join(tokens[compositeIdx+1:], " ")
	}

	return &BoardingPass{
		PassengerName:    FormatPassengerName(name),
		ETicketIndicator: indicator,
		BookingCode:      booking,
		Origin:           route[0:3],
		Destination:      route[3:6],
		AirlineCode:      route[6:8],
		FlightNumber:     tokens[tokenFlight+shift],
		FlightDateJulian: julian,
		CabinClass:       cabin,
		SeatNumber:       seat,
		SequenceNumber:   sequence,
		Infant:           infant,
		ConditionalData:  conditional,
	}, true
}

// splitIndicator resolves token 0 into the e-ticket letter and booking code.
// A lone letter is merged with the following token only when it is a known
// indicator and enough tokens remain; the guard is empirical, derived from
// observed carrier data rather than the published layout, and is preserved
// as-is. A lone non-indicator letter ("G", "H", ...) stays a normal token so
// a booking code starting with that letter is not mis-split.
func splitIndicator(tokens []string) (indicator, booking string, shift int) {
	t0 := tokens[0]
	if len(t0) == 1 && len(tokens) >= minTokensForMerge {
		if _, ok := validIndicators[upperByte(t0[0])]; ok {
			merged := t0 + tokens[1]
			return merged[:1], merged[1:], 1
		}
	}
	return t0[:1], t0[1:], 0
}

func upperByte(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
