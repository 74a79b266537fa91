package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ocrtools/pdfprep/pipeline"
)

// Server identity constants.
const (
	serverName    = "pdfprep"
	serverVersion = "0.1.0"
)

// MCP tool parameter key constants — shared between schema definitions and
// argument extraction so a typo in one place is caught by the other.
const (
	argPDFPath   = "pdf_path"
	argOutputDir = "output_dir"
	argImagePath = "image_path"
)

func main() {
	s := server.NewMCPServer(serverName, serverVersion)
	registerTools(s, pipeline.NewPreprocessor())

	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("server error: %v\n", err)
	}
}

// registerTools binds MCP tool definitions to their handlers.
// It accepts the PagePreprocessor interface so tests can inject a mock.
func registerTools(s *server.MCPServer, prep pipeline.PagePreprocessor) {
	// pdf_to_images — rasterize a PDF into per-page PNG files
	s.AddTool(
		mcp.NewTool("pdf_to_images",
			mcp.WithDescription("Convert a PDF into one PNG image per page using Poppler's pdfimages. "+
				"Returns the generated image paths sorted in page order. "+
				"Images are written to output_dir when given, otherwise to a fresh temporary directory "+
				"owned by the caller."),
			mcp.WithString(argPDFPath,
				mcp.Required(),
				mcp.Description("Absolute path to the PDF file to convert"),
			),
			mcp.WithString(argOutputDir,
				mcp.Description("Directory to write images into; created fresh under the system temp dir when omitted"),
			),
		),
		pdfToImagesHandler(prep),
	)

	// preprocess_image — normalize a page image's orientation
	s.AddTool(
		mcp.NewTool("preprocess_image",
			mcp.WithDescription("Detect a page image's rotation with Tesseract orientation detection "+
				"and rotate the file upright in place with ImageMagick mogrify."),
			mcp.WithString(argImagePath,
				mcp.Required(),
				mcp.Description("Absolute path to the image file to normalize"),
			),
		),
		preprocessImageHandler(prep),
	)

	// pdf_info — report page count and collector ceiling
	s.AddTool(
		mcp.NewTool("pdf_info",
			mcp.WithDescription("Report a PDF's page count and whether it exceeds the page ceiling "+
				"of the image naming scheme."),
			mcp.WithString(argPDFPath,
				mcp.Required(),
				mcp.Description("Absolute path to the PDF file to inspect"),
			),
		),
		pdfInfoHandler(prep),
	)
}

func pdfToImagesHandler(prep pipeline.PagePreprocessor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pdfPath, ok := req.Params.Arguments[argPDFPath].(string)
		if !ok || pdfPath == "" {
			return mcp.NewToolResultError(argPDFPath + " is required"), nil
		}
		outputDir, _ := req.Params.Arguments[argOutputDir].(string)
		if outputDir == "" {
			outputDir = filepath.Join(os.TempDir(), "pdfprep-"+uuid.NewString())
			if err := os.MkdirAll(outputDir, 0o750); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		images, err := prep.PDFToImages(pdfPath, outputDir)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Output directory: %s\nImages (%d):\n%s",
			outputDir, len(images), strings.Join(images, "\n"))), nil
	}
}

func preprocessImageHandler(prep pipeline.PagePreprocessor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		imagePath, ok := req.Params.Arguments[argImagePath].(string)
		if !ok || imagePath == "" {
			return mcp.NewToolResultError(argImagePath + " is required"), nil
		}
		rotate, err := prep.PreprocessImage(imagePath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"Rotated %s by %s degrees", imagePath, rotate)), nil
	}
}

func pdfInfoHandler(prep pipeline.PagePreprocessor) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pdfPath, ok := req.Params.Arguments[argPDFPath].(string)
		if !ok || pdfPath == "" {
			return mcp.NewToolResultError(argPDFPath + " is required"), nil
		}
		pages, err := prep.ProbePDF(pdfPath)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		msg := fmt.Sprintf("Pages: %d", pages)
		if limit := prep.MaxPages(); pages > limit {
			msg += fmt.Sprintf("\nWarning: exceeds the %d-page ceiling of the image naming scheme; "+
				"trailing pages will not be collected", limit)
		}
		return mcp.NewToolResultText(msg), nil
	}
}
