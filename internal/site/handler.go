package site

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledongthuc/pdf"

	"cv-backend/internal/shared/server/respond"
	"cv-backend/internal/shared/util"
)

const excerptLimit = 500

// Handler serves the resume page, the resume PDF, and files from the
// resources directory.
type Handler struct {
	Dir     string
	PDFName string
}

func NewHandler(dir, pdfName string) *Handler {
	if pdfName == "" {
		pdfName = "resume.pdf"
	}
	return &Handler{Dir: dir, PDFName: pdfName}
}

// RegisterRoutes attaches the public site routes to the engine root.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/resume.pdf", h.resumePDF)
	r.GET("/resources/*filepath", h.resource)
}

// RegisterAPIRoutes attaches resume metadata routes under the API group.
func (h *Handler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.GET("/resume/info", h.resumeInfo)
}

func (h *Handler) index(c *gin.Context) {
	path := filepath.Join(h.Dir, "index.html")
	if _, err := os.Stat(path); err == nil {
		c.File(path)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fallbackIndex))
}

func (h *Handler) resumePDF(c *gin.Context) {
	path := filepath.Join(h.Dir, h.PDFName)
	if _, err := os.Stat(path); err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "resume pdf not available", nil)
		return
	}
	c.Header("Content-Disposition", `inline; filename="resume.pdf"`)
	c.File(path)
}

func (h *Handler) resource(c *gin.Context) {
	name, err := util.SanitizeFileName(strings.TrimPrefix(c.Param("filepath"), "/"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "resource not found", nil)
		return
	}
	path := filepath.Join(h.Dir, name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		respond.Error(c, http.StatusNotFound, "not_found", "resource not found", nil)
		return
	}
	c.File(path)
}

func (h *Handler) resumeInfo(c *gin.Context) {
	path := filepath.Join(h.Dir, h.PDFName)
	data, err := os.ReadFile(path)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "resume pdf not available", nil)
		return
	}
	pages, excerpt, err := inspectPDF(data)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "resume_parse_error", "failed to parse resume pdf", nil)
		return
	}
	respond.OK(c, gin.H{
		"fileName":  h.PDFName,
		"sizeBytes": len(data),
		"pages":     pages,
		"excerpt":   excerpt,
	})
}

// inspectPDF returns the page count and a short plain-text excerpt.
func inspectPDF(data []byte) (int, string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, "", err
	}
	pages := reader.NumPage()

	plain, err := reader.GetPlainText()
	if err != nil {
		// Page count alone is still useful for image-only PDFs.
		return pages, "", nil
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(plain, excerptLimit)); err != nil {
		return pages, "", nil
	}
	return pages, strings.TrimSpace(buf.String()), nil
}

const fallbackIndex = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Resume</title></head>
<body>
<h1>Resume</h1>
<p><a href="/resume.pdf">Download resume (PDF)</a></p>
</body>
</html>
`
