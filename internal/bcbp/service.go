package bcbp

import (
	"fmt"

	"github.com/aeroscan/mcp-bcbp-decoder/internal/scan"
	"github.com/aeroscan/mcp-bcbp-decoder/internal/security"
)

// Service handles boarding-pass decoding operations by orchestrating the
// decoder and the scan-file components.
type Service struct {
	decoder       *Decoder
	dumps         *scan.DumpReader
	pdfs          *scan.PDFReader
	search        *scan.Search
	pathValidator *security.PathValidator
	maxFileSize   int64
}

// NewService creates a service rooted at the configured scan directory.
func NewService(maxFileSize int64, scanDirectory string) (*Service, error) {
	pathValidator, err := security.NewPathValidator(scanDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		decoder:       NewDecoder(),
		dumps:         scan.NewDumpReader(maxFileSize),
		pdfs:          scan.NewPDFReader(maxFileSize),
		search:        scan.NewSearch(maxFileSize),
		pathValidator: pathValidator,
		maxFileSize:   maxFileSize,
	}, nil
}

// Decode parses a single raw barcode payload.
func (s *Service) Decode(req DecodeRequest) (*DecodeResult, error) {
	if req.Barcode == "" {
		return nil, fmt.Errorf("barcode cannot be empty")
	}

	pass, err := s.decoder.Decode(req.Barcode)
	if err != nil {
		return nil, err
	}

	return &DecodeResult{
		Barcode: req.Barcode,
		Pass:    pass,
	}, nil
}

// Validate reports whether a payload decodes, without treating a miss as a
// processing error.
func (s *Service) Validate(req ValidateRequest) (*ValidateResult, error) {
	if req.Barcode == "" {
		return &ValidateResult{
			Valid:   false,
			Message: "barcode cannot be empty",
		}, nil
	}

	if _, err := s.decoder.Decode(req.Barcode); err != nil {
		return &ValidateResult{
			Valid:   false,
			Message: err.Error(),
		}, nil
	}

	return &ValidateResult{Valid: true}, nil
}

// DecodeFile reads a scan file, extracts every candidate payload and decodes
// each one. Rejected candidates are counted, not fatal: one bad line in a
// dump must not sink the rest.
func (s *Service) DecodeFile(req DecodeFileRequest) (*DecodeFileResult, error) {
	if err := s.pathValidator.ValidatePath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	var (
		text   string
		source string
		err    error
	)
	switch {
	case scan.IsPDFFile(req.Path):
		source = "pdf"
		text, err = s.pdfs.ExtractText(req.Path)
	case scan.IsDumpFile(req.Path):
		source = "dump"
		text, err = s.dumps.Read(req.Path)
	default:
		return nil, fmt.Errorf("unsupported scan file: %s", req.Path)
	}
	if err != nil {
		return nil, err
	}

	candidates := Candidates(text)

	result := &DecodeFileResult{
		Path:       req.Path,
		Source:     source,
		Candidates: len(candidates),
	}
	for _, candidate := range candidates {
		pass, err := s.decoder.Decode(candidate)
		if err != nil {
			result.Rejected++
			continue
		}
		result.Passes = append(result.Passes, *pass)
	}

	return result, nil
}

// SearchDirectory searches for scan files in a directory.
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	directory := req.Directory
	if directory == "" {
		directory = s.pathValidator.Root()
	}

	if err := s.pathValidator.ValidateDirectory(directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	files, err := s.search.SearchDirectory(directory, req.Query)
	if err != nil {
		return nil, err
	}

	return &SearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   directory,
		SearchQuery: req.Query,
	}, nil
}

// ServerInfo returns server information and usage guidance.
func (s *Service) ServerInfo(req ServerInfoRequest, serverName, version string) (*ServerInfoResult, error) {
	directory := s.pathValidator.Root()

	// A failed listing leaves the contents empty rather than failing the
	// whole info call.
	contents, err := s.search.FindLimited(directory, 100)
	if err != nil {
		contents = nil
	}

	availableTools := []ToolInfo{
		{
			Name:        "bcbp_decode",
			Description: "Decode a raw boarding pass barcode payload into a structured record",
			Usage:       "Pass the exact text a PDF417 scanner produced. A rejection means the payload is not a recognizable boarding pass; rescan rather than editing the text.",
			Parameters:  "barcode (required): Raw decoded content of the PDF417 barcode",
		},
		{
			Name:        "bcbp_validate",
			Description: "Check whether a payload is a decodable boarding pass barcode",
			Usage:       "Use this for a cheap accept/reject check without the full record.",
			Parameters:  "barcode (required): Raw decoded content of the PDF417 barcode",
		},
		{
			Name:        "bcbp_decode_file",
			Description: "Decode every boarding pass payload found in a scan file",
			Usage:       "Accepts scanner dump files (.txt, .bcbp; one payload per line) and boarding-pass PDFs with a text layer.",
			Parameters:  "path (required): Full path to the scan file, inside the configured directory",
		},
		{
			Name:        "bcbp_search_directory",
			Description: "Search for scan files in a directory with optional fuzzy search",
			Usage:       "Use this to discover dump files and boarding-pass PDFs before decoding them.",
			Parameters:  "directory (optional): Directory to search (uses default if empty), query (optional): Fuzzy filename filter",
		},
		{
			Name:        "bcbp_server_info",
			Description: "Get server information, available tools and usage guidance",
			Usage:       "Start here to see the configured directory and its contents.",
			Parameters:  "none",
		},
	}

	usageGuidance := `BCBP Decoder Usage Guide:

1. DISCOVER SCAN FILES:
   - Use 'bcbp_search_directory' to find scanner dumps and boarding-pass PDFs

2. DECODE:
   - Use 'bcbp_decode' for a single raw payload straight from a scanner
   - Use 'bcbp_decode_file' to process every payload in a file

3. VALIDATE:
   - Use 'bcbp_validate' when you only need accept/reject

IMPORTANT NOTES:
- Payloads must be the decoded text of the barcode; this server does not read PDF417 images
- A rejected payload should be rescanned, never retried with edited text
- File access is confined to the configured scan directory`

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DefaultDirectory:  directory,
		MaxFileSize:       s.maxFileSize,
		AvailableTools:    availableTools,
		DirectoryContents: contents,
		UsageGuidance:     usageGuidance,
	}, nil
}

// MaxFileSize returns the configured file size limit.
func (s *Service) MaxFileSize() int64 {
	return s.maxFileSize
}
