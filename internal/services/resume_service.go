package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeService stores uploaded resumes at uploads/{owner}/resume.{pdf|txt}
// and resolves them back to plain text for the generator.
type ResumeService struct {
	UploadDir string
}

func NewResumeService(uploadDir string) *ResumeService {
	return &ResumeService{UploadDir: uploadDir}
}

func (s *ResumeService) txtPath(userID string) string {
	return filepath.Join(s.UploadDir, userID, "resume.txt")
}

func (s *ResumeService) pdfPath(userID string) string {
	return filepath.Join(s.UploadDir, userID, "resume.pdf")
}

// Save writes an uploaded artifact to the per-owner path, overwriting any
// prior file of the same kind. kind must be "pdf" or "txt".
func (s *ResumeService) Save(userID, kind string, r io.Reader) (string, error) {
	var path string
	switch kind {
	case "pdf":
		path = s.pdfPath(userID)
	case "txt":
		path = s.txtPath(userID)
	default:
		return "", fmt.Errorf("unsupported resume kind %q", kind)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return path, nil
}

// ResumeText resolves the owner's resume to plain text. A plain-text
// artifact is preferred over a PDF when both exist.
func (s *ResumeService) ResumeText(userID string) (string, error) {
	data, err := os.ReadFile(s.txtPath(userID))
	if err == nil {
		return string(data), nil
	}
	// Only absence falls through to the PDF; a text artifact that exists
	// but cannot be read is its own failure, not a missing resume.
	if !os.IsNotExist(err) {
		return "", err
	}

	pdfFile := s.pdfPath(userID)
	if _, err := os.Stat(pdfFile); err != nil {
		return "", ErrResumeMissing
	}

	text, err := extractPDFText(pdfFile)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrResumeUnreadable, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrResumeUnreadable
	}
	return text, nil
}

// AttachmentPath returns the PDF artifact path if one exists, so outbound
// mail can attach it. Empty string means no attachment.
func (s *ResumeService) AttachmentPath(userID string) string {
	path := s.pdfPath(userID)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// extractPDFText concatenates per-page extracted text. Pages that yield
// nothing contribute an empty string rather than failing the whole file.
func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
