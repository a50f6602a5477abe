package bcbp

import "strings"

const (
	// fixedMinLength covers the whole mandatory segment:
	// 2+20+1+6+3+3+2+5+3+1+4+4+1.
	fixedMinLength = 55

	// fixedMaxSpaces is the rejection threshold for the strict parser: more
	// spaces than this means the payload is really a space-padded layout and
	// belongs to the token strategy.
	fixedMaxSpaces = 5

	// conditionalStart is the offset where carrier-specific trailing data
	// begins.
	conditionalStart = 55
)

// fixedField describes one column range of the strict BCBP mandatory
// segment. Slices are taken at these exact offsets before any trimming so
// the columns stay aligned; only extracted values are trimmed, and only where
// the format pads them.
type fixedField struct {
	name  string
	start int
	end   int
	trim  bool
}

var fixedLayout = []fixedField{
	{name: "name", start: 2, end: 22, trim: true},
	{name: "eticket", start: 22, end: 23},
	{name: "booking", start: 23, end: 29, trim: true},
	{name: "origin", start: 29, end: 32},
	{name: "destination", start: 32, end: 35},
	{name: "airline", start: 35, end: 37},
	{name: "flight", start: 37, end: 42, trim: true},
	{name: "julian", start: 42, end: 45},
	{name: "cabin", start: 45, end: 46},
	{name: "seat", start: 46, end: 50, trim: true},
	{name: "sequence", start: 50, end: 54, trim: true},
}

// fixedWidthStrategy parses payloads that strictly follow the fixed-column
// BCBP layout, as emitted by carriers that respect the standard.
type fixedWidthStrategy struct{}

func (fixedWidthStrategy) Name() string { return "fixed-width" }

func (fixedWidthStrategy) Decode(payload string) (*BoardingPass, bool) {
	if len(payload) < fixedMinLength {
		return nil, false
	}

	if strings.Count(payload, " ") > fixedMaxSpaces {
		return nil, false
	}

	fields := make(map[string]string, len(fixedLayout))
	for _, f := range fixedLayout {
		if len(payload) < f.end {
			fields[f.name] = ""
			continue
		}
		value := payload[f.start:f.end]
		if f.trim {
			value = strings.TrimSpace(value)
		}
		fields[f.name] = value
	}

	seat, infant := resolveSeat(fields["seat"])

	conditional := ""
	if len(payload) > conditionalStart {
		conditional = strings.TrimSpace(payload[conditionalStart:])
	}

	return &BoardingPass{
		PassengerName:    FormatPassengerName(fields["name"]),
		ETicketIndicator: fields["eticket"],
		BookingCode:      fields["booking"],
		Origin:           fields["origin"],
		Destination:      fields["destination"],
		AirlineCode:      fields["airline"],
		FlightNumber:     fields["flight"],
		FlightDateJulian: fields["julian"],
		CabinClass:       fields["cabin"],
		SeatNumber:       seat,
		SequenceNumber:   fields["sequence"],
		Infant:           infant,
		ConditionalData:  conditional,
	}, true
}
