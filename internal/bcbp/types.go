package bcbp

import "github.com/aeroscan/mcp-bcbp-decoder/internal/scan"

// BoardingPass is the structured record extracted from a boarding pass
// barcode payload. It is only ever built by a successful decode; there is no
// partially populated instance.
type BoardingPass struct {
	PassengerName    string `json:"passenger_name"`
	ETicketIndicator string `json:"e_ticket_indicator"`
	BookingCode      string `json:"booking_code"`
	Origin           string `json:"origin"`
	Destination      string `json:"destination"`
	AirlineCode      string `json:"airline_code"`
	FlightNumber     string `json:"flight_number"`
	FlightDateJulian string `json:"flight_date_julian"`
	CabinClass       string `json:"cabin_class"`
	SeatNumber       string `json:"seat_number"`
	SequenceNumber   string `json:"sequence_number"`
	Infant           bool   `json:"infant_status"`
	// ConditionalData holds the undecoded carrier-specific tail of the
	// payload. Empty means the payload carried none.
	ConditionalData string `json:"conditional_data,omitempty"`
}

// Request Types

// DecodeRequest represents a request to decode a raw barcode payload
type DecodeRequest struct {
	Barcode string `json:"barcode"`
}

// ValidateRequest represents a request to check whether a payload decodes
type ValidateRequest struct {
	Barcode string `json:"barcode"`
}

// DecodeFileRequest represents a request to decode every candidate payload
// found in a scanner dump file or a boarding-pass PDF
type DecodeFileRequest struct {
	Path string `json:"path"`
}

// SearchDirectoryRequest represents a request to search for scan files in a
// directory
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ServerInfoRequest represents a request for server information
type ServerInfoRequest struct {
	// No parameters needed for server info
}

// Response Types

// DecodeResult represents the result of a successful decode
type DecodeResult struct {
	Barcode string        `json:"barcode"`
	Pass    *BoardingPass `json:"pass"`
}

// ValidateResult represents the outcome of a validation check
type ValidateResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// DecodeFileResult represents the result of decoding a scan file
type DecodeFileResult struct {
	Path       string         `json:"path"`
	Source     string         `json:"source"` // "dump" or "pdf"
	Passes     []BoardingPass `json:"passes"`
	Candidates int            `json:"candidates"`
	Rejected   int            `json:"rejected"`
}

// SearchDirectoryResult represents the result of a scan-file search
type SearchDirectoryResult struct {
	Files       []scan.FileInfo `json:"files"`
	TotalCount  int             `json:"total_count"`
	Directory   string          `json:"directory"`
	SearchQuery string          `json:"search_query,omitempty"`
}

// ServerInfoResult represents server information and usage guidance
type ServerInfoResult struct {
	ServerName        string          `json:"server_name"`
	Version           string          `json:"version"`
	DefaultDirectory  string          `json:"default_directory"`
	MaxFileSize       int64           `json:"max_file_size"`
	AvailableTools    []ToolInfo      `json:"available_tools"`
	DirectoryContents []scan.FileInfo `json:"directory_contents"`
	UsageGuidance     string          `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
