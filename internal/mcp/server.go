package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aeroscan/mcp-bcbp-decoder/internal/bcbp"
	"github.com/aeroscan/mcp-bcbp-decoder/internal/config"
)

// Server represents the MCP server instance
type Server struct {
	config      *config.Config
	bcbpService *bcbp.Service
	mcpServer   *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, bcbpService *bcbp.Service) (*Server, error) {
	if bcbpService == nil {
		return nil, fmt.Errorf("bcbpService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:      cfg,
		bcbpService: bcbpService,
		mcpServer:   mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	decodeTool := mcp.NewTool(
		"bcbp_decode",
		mcp.WithDescription("Decode a raw boarding pass barcode payload into a structured record"),
		mcp.WithString("barcode",
			mcp.Required(),
			mcp.Description("Raw decoded content of the PDF417 barcode"),
		),
	)
	s.mcpServer.AddTool(decodeTool, s.handleDecode)

	validateTool := mcp.NewTool(
		"bcbp_validate",
		mcp.WithDescription("Check whether a payload is a decodable boarding pass barcode"),
		mcp.WithString("barcode",
			mcp.Required(),
			mcp.Description("Raw decoded content of the PDF417 barcode"),
		),
	)
	s.mcpServer.AddTool(validateTool, s.handleValidate)

	decodeFileTool := mcp.NewTool(
		"bcbp_decode_file",
		mcp.WithDescription("Decode every boarding pass payload found in a scanner dump or boarding-pass PDF"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the scan file"),
		),
	)
	s.mcpServer.AddTool(decodeFileTool, s.handleDecodeFile)

	searchDirectoryTool := mcp.NewTool(
		"bcbp_search_directory",
		mcp.WithDescription("Search for scan files in a directory with optional fuzzy search"),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses default if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional search query for fuzzy matching"),
		),
	)
	s.mcpServer.AddTool(searchDirectoryTool, s.handleSearchDirectory)

	serverInfoTool := mcp.NewTool(
		"bcbp_server_info",
		mcp.WithDescription("Get server information, available tools, directory contents, and usage guidance"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions

func (s *Server) handleDecode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	barcode, err := request.RequireString("barcode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.bcbpService.Decode(bcbp.DecodeRequest{Barcode: barcode})
	if err != nil {
		if errors.Is(err, bcbp.ErrNoMatch) {
			return mcp.NewToolResultError(
				"Barcode rejected: " + err.Error() +
					". Rescan the boarding pass instead of editing the payload."), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := "Boarding pass decoded successfully\n\n"
	responseText += s.formatBoardingPass(result.Pass)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	barcode, err := request.RequireString("barcode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.bcbpService.Validate(bcbp.ValidateRequest{Barcode: barcode})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = "Payload is a valid boarding pass barcode"
	} else {
		responseText = fmt.Sprintf("Payload is not a valid boarding pass barcode: %s", result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDecodeFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.bcbpService.DecodeFile(bcbp.DecodeFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatDecodeFileResult(result)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSearchDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}

	query := ""
	if q, ok := args["query"].(string); ok {
		query = q
	}

	result, err := s.bcbpService.SearchDirectory(bcbp.SearchDirectoryRequest{
		Directory: directory,
		Query:     query,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalCount == 0 {
		responseText = fmt.Sprintf("No scan files found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			responseText += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
	} else {
		responseText = s.formatSearchDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.bcbpService.ServerInfo(bcbp.ServerInfoRequest{}, s.config.ServerName, s.config.Version)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := s.formatServerInfoResult(result)
	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods

func (s *Server) formatBoardingPass(pass *bcbp.BoardingPass) string {
	text := fmt.Sprintf("Passenger: %s\n", pass.PassengerName)
	text += fmt.Sprintf("Booking Code: %s\n", pass.BookingCode)
	text += fmt.Sprintf("E-Ticket Indicator: %s\n", pass.ETicketIndicator)
	text += fmt.Sprintf("Route: %s -> %s\n", pass.Origin, pass.Destination)
	text += fmt.Sprintf("Flight: %s %s\n", pass.AirlineCode, pass.FlightNumber)
	text += fmt.Sprintf("Flight Date (julian): %s\n", pass.FlightDateJulian)
	text += fmt.Sprintf("Cabin Class: %s\n", pass.CabinClass)
	if pass.Infant {
		text += "Seat: none (infant, no seat assignment)\n"
	} else {
		text += fmt.Sprintf("Seat: %s\n", pass.SeatNumber)
	}
	text += fmt.Sprintf("Sequence Number: %s\n", pass.SequenceNumber)
	if pass.ConditionalData != "" {
		text += fmt.Sprintf("Conditional Data: %s\n", pass.ConditionalData)
	}
	return text
}

func (s *Server) formatDecodeFileResult(result *bcbp.DecodeFileResult) string {
	text := fmt.Sprintf("Decoded scan file: %s\n", result.Path)
	text += fmt.Sprintf("Source: %s\n", result.Source)
	text += fmt.Sprintf("Candidate payloads: %d\n", result.Candidates)
	text += fmt.Sprintf("Decoded: %d\n", len(result.Passes))
	text += fmt.Sprintf("Rejected: %d\n", result.Rejected)

	for i := range result.Passes {
		text += fmt.Sprintf("\nBoarding pass %d:\n", i+1)
		text += s.formatBoardingPass(&result.Passes[i])
	}

	return text
}

func (s *Server) formatSearchDirectoryResult(result *bcbp.SearchDirectoryResult) string {
	text := fmt.Sprintf("Found %d scan file(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func (s *Server) formatServerInfoResult(result *bcbp.ServerInfoResult) string {
	text := fmt.Sprintf("%s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("Default Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("Max File Size: %d MB\n\n", result.MaxFileSize/(1024*1024))

	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("Directory Contents (%d scan files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "Directory Contents: No scan files found in default directory\n\n"
	}

	text += "Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Description: %s\n", tool.Description)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting BCBP decoder MCP server in stdio mode")
		log.Printf("Scan directory: %s", s.config.ScanDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs transport is stdio-first; server mode falls back until
	// an HTTP transport is wired up.
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
