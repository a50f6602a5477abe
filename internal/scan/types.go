package scan

// FileInfo represents information about a scan file on disk
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

const modifiedTimeLayout = "2006-01-02 15:04:05"

// Scan file extensions recognized by this package. Dump files hold the raw
// text a barcode scanner emitted, one payload per line; PDFs are airline
// boarding passes whose text layer embeds the payload.
const (
	extText = ".txt"
	extBCBP = ".bcbp"
	extPDF  = ".pdf"
)
