package responses

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
)

// WritePDFAttachment writes a complete PDF buffer as a binary download.
func WritePDFAttachment(w http.ResponseWriter, filename string, PDFBytes []byte) {
	WritePDFAttachmentHeaders(w, filename, len(PDFBytes))
	if _, err := w.Write(PDFBytes); err != nil {
		log.Printf("[ERROR] writing PDF to response: %v", err)
	}
}

// WritePDFAttachmentHeaders write HTTP response headers for a PDF download. i.e. headers are frozen
func WritePDFAttachmentHeaders(w http.ResponseWriter, filename string, byteLength int) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(byteLength))
	w.WriteHeader(http.StatusOK) // Response Header Sent & Frozen
}
