package bcbp

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Payloads below are real-world scans with booking references scrambled.

func TestDecodeGaruda(t *testing.T) {
	decoder := NewDecoder()
	barcode := "M1PRASETYO/YUDHA DWI  EE6UVIL CGKSUBGA 0312 260Y045C0120 348>5180  5259B1A              2A12621429493830 GA                        N"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Yudha Dwi Prasetyo", pass.PassengerName)
	assert.Equal(t, "E", pass.ETicketIndicator)
	assert.Equal(t, "E6UVIL", pass.BookingCode)
	assert.Equal(t, "CGK", pass.Origin)
	assert.Equal(t, "SUB", pass.Destination)
	assert.Equal(t, "GA", pass.AirlineCode)
	assert.Equal(t, "0312", pass.FlightNumber)
	assert.Equal(t, "260", pass.FlightDateJulian)
	assert.Equal(t, "Y", pass.CabinClass)
	assert.Equal(t, "045C", pass.SeatNumber)
	assert.Equal(t, "0120", pass.SequenceNumber)
	assert.False(t, pass.Infant)
	assert.NotEmpty(t, pass.ConditionalData)
}

func TestDecodeLionAir(t *testing.T) {
	decoder := NewDecoder()
	barcode := "M1BAYU/MUHAMMAD MR    ESMMTHQ DHXCGKID 6473 032Y007A0002 300."

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Mr Muhammad Bayu", pass.PassengerName)
	assert.Equal(t, "ID", pass.AirlineCode)
	assert.Equal(t, "032", pass.FlightDateJulian)
	assert.Equal(t, "007A", pass.SeatNumber)
}

func TestDecodeCitilink(t *testing.T) {
	decoder := NewDecoder()
	barcode := "M1LADOA/RICKYFEBRIANTO ZKMR9K SUBCGKQG 0725 168Y017A0016 147>1181WW5166BQG 000000000000029177000000000- 0"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Rickyfebrianto Ladoa", pass.PassengerName)
	assert.Equal(t, "Z", pass.ETicketIndicator)
	assert.Equal(t, "KMR9K", pass.BookingCode)
	assert.Equal(t, "QG", pass.AirlineCode)
	assert.Equal(t, "168", pass.FlightDateJulian)
}

func TestDecodeBatikAir(t *testing.T) {
	decoder := NewDecoder()
	barcode := "M1ABU TALIB/SUZANA MS EQQZBWR KULTWUOD 1900 129Y012F0118 100"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Ms Suzana Abu Talib", pass.PassengerName)
	assert.Equal(t, "KUL", pass.Origin)
	assert.Equal(t, "TWU", pass.Destination)
	assert.Equal(t, "OD", pass.AirlineCode)
	assert.Equal(t, "129", pass.FlightDateJulian)
}

func TestDecodeAirAsiaMixedCase(t *testing.T) {
	decoder := NewDecoder()
	barcode := "M1Ongere/Mark Mokaya  EPBC4GN KULLGKAK 6306 108Y019B0026 11E>3180MM    B                00"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Mark Mokaya Ongere", pass.PassengerName)
	assert.Equal(t, "AK", pass.AirlineCode)
	assert.Equal(t, "108", pass.FlightDateJulian)
	assert.Equal(t, "019B", pass.SeatNumber)
}

func TestDecodeInfant(t *testing.T) {
	decoder := NewDecoder()
	barcode := "M1MAYZURA/AUFARIZA HANEBJQUJW CGKUPGID 6296 147Y0INF0097 100"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Aufariza Han Mayzura", pass.PassengerName)
	assert.Equal(t, "E", pass.ETicketIndicator)
	assert.Equal(t, "BJQUJW", pass.BookingCode)
	assert.Equal(t, "CGK", pass.Origin)
	assert.Equal(t, "UPG", pass.Destination)
	assert.Equal(t, "ID", pass.AirlineCode)
	assert.Equal(t, "6296", pass.FlightNumber)
	assert.Equal(t, "147", pass.FlightDateJulian)
	assert.Equal(t, "Y", pass.CabinClass)
	assert.Empty(t, pass.SeatNumber)
	assert.Equal(t, "0097", pass.SequenceNumber)
	assert.True(t, pass.Infant)
}

func TestDecodeShortNameExcludesIndicator(t *testing.T) {
	// A short name padded to the 20-char column must not absorb the
	// e-ticket indicator that follows it.
	decoder := NewDecoder()
	barcode := "M1AMELIA/VINO         EFGH345 CGKBDOQG 1630 284Y029A0045 290>4012WC0011BQG 000000000000056789000000000- 0"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Vino Amelia", pass.PassengerName)
	assert.Equal(t, "E", pass.ETicketIndicator)
	assert.Equal(t, "FGH345", pass.BookingCode)
	assert.Equal(t, "CGK", pass.Origin)
	assert.Equal(t, "BDO", pass.Destination)
	assert.Equal(t, "QG", pass.AirlineCode)
	assert.Equal(t, "1630", pass.FlightNumber)
	assert.Equal(t, "284", pass.FlightDateJulian)
}

func TestDecodeBookingCodeStartingWithG(t *testing.T) {
	// "G" is not an e-ticket letter, so a booking code starting with it
	// must not trigger the indicator merge.
	decoder := NewDecoder()
	barcode := "M1OKTAVIA/KENNY       GHIJ567 CGKBDOQG 1630 284Y002O0012 334>8457BX8890BQG 000000000000062747000000000- 0"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Kenny Oktavia", pass.PassengerName)
	assert.Equal(t, "G", pass.ETicketIndicator)
	assert.Equal(t, "HIJ567", pass.BookingCode)
	assert.Equal(t, "QG", pass.AirlineCode)
	assert.Equal(t, "284", pass.FlightDateJulian)
}

func TestDecodeFixedWidthFallback(t *testing.T) {
	// No padding spaces at all: the token strategy cannot split this, the
	// fixed-width fallback picks it up.
	decoder := NewDecoder()
	barcode := "M1WICKRAMASINGHE/ANJLIEABC123CGKSINGA00832123Y012A00451"

	pass, err := decoder.Decode(barcode)
	require.NoError(t, err)

	assert.Equal(t, "Anjli Wickramasinghe", pass.PassengerName)
	assert.Equal(t, "SIN", pass.Destination)
	assert.Equal(t, "00832", pass.FlightNumber)
	assert.Equal(t, "012A", pass.SeatNumber)
}

func TestDecodeNormalizesRawScan(t *testing.T) {
	decoder := NewDecoder()
	clean := "M1ABU TALIB/SUZANA MS EQQZBWR KULTWUOD 1900 129Y012F0118 100"
	dirty := "M1ABU TALIB/SUZANA MS \tEQQZBWR KULTWUOD 1900 129Y012F0118 100\r\n"

	cleanPass, err := decoder.Decode(clean)
	require.NoError(t, err)

	dirtyPass, err := decoder.Decode(dirty)
	require.NoError(t, err)

	assert.Equal(t, cleanPass, dirtyPass)
}

func TestDecodeRejections(t *testing.T) {
	decoder := NewDecoder()

	tests := []struct {
		name    string
		barcode string
	}{
		{
			name:    "empty payload",
			barcode: "",
		},
		{
			name:    "too short",
			barcode: "M1SMITH/JOHN EABC123",
		},
		{
			name:    "wrong format marker",
			barcode: "X1SMITH/JOHN          EABC123 CGKJKTGA 0001 001Y001A0001 100",
		},
		{
			name:    "marker only after junk prefix",
			barcode: "  M1SMITH/JOHN        EABC123 CGKJKTGA 0001 001Y001A0001 100",
		},
		{
			name:    "unstructured payload",
			barcode: "M1................................................",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decoder.Decode(tt.barcode)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNoMatch))
		})
	}
}

func TestCandidates(t *testing.T) {
	dump := strings.Join([]string{
		"M1ABU TALIB/SUZANA MS EQQZBWR KULTWUOD 1900 129Y012F0118 100",
		"scanner ready",
		"",
		"M1SMITH/JOHN EABC123", // too short after normalization
		"M1BAYU/MUHAMMAD MR    ESMMTHQ DHXCGKID 6473 032Y007A0002 300.",
	}, "\n")

	candidates := Candidates(dump)
	require.Len(t, candidates, 2)
	assert.Equal(t, "M1ABU TALIB/SUZANA MS EQQZBWR KULTWUOD 1900 129Y012F0118 100", candidates[0])
	assert.Equal(t, "M1BAYU/MUHAMMAD MR    ESMMTHQ DHXCGKID 6473 032Y007A0002 300.", candidates[1])
}

func TestCandidatesEmpty(t *testing.T) {
	assert.Empty(t, Candidates(""))
	assert.Empty(t, Candidates("no payloads here\njust scanner noise"))
}
