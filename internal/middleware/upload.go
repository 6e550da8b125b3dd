package middleware

import (
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/core/domain"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const uploadedFilesKey = contextKey("uploadedFiles")

// multipart overhead allowed on top of MaxFiles*MaxFileSize
const formFieldAllowance = 1 << 20

// UploadOptions configures UploadMiddleware.
type UploadOptions struct {
	FieldName    string
	MaxFiles     int
	MaxFileSize  int64
	AllowedTypes []string
}

// UploadMiddleware parses multipart bodies, enforces the attachment limits and
// stores the accepted files in the context for GetUploadedFiles.
// Non-multipart requests pass through untouched.
func UploadMiddleware(opts UploadOptions) gin.HandlerFunc {
	if opts.FieldName == "" {
		opts.FieldName = "attachments"
	}
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}
		logger := GetLoggerFromCtx(c.Request.Context())

		bodyLimit := opts.MaxFileSize*int64(opts.MaxFiles) + formFieldAllowance
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

		form, err := c.MultipartForm()
		if err != nil {
			if isBodyTooLarge(err) {
				logger.Warn("Multipart body exceeds limit", slog.Int64("limit", bodyLimit))
				abortWithMessage(c, http.StatusRequestEntityTooLarge, "File too large")
				return
			}
			logger.Warn("Failed to parse multipart form", slog.String("error", err.Error()))
			abortWithMessage(c, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		defer func() {
			if err := form.RemoveAll(); err != nil {
				logger.Warn("Failed to remove multipart temp files", slog.String("error", err.Error()))
			}
		}()

		headers := form.File[opts.FieldName]
		if len(headers) > opts.MaxFiles {
			abortWithMessage(c, http.StatusBadRequest, "Too many files")
			return
		}

		files := make([]domain.UploadFile, 0, len(headers))
		for _, fh := range headers {
			if fh.Size > opts.MaxFileSize {
				logger.Warn("Attachment exceeds size limit", slog.String("file", fh.Filename), slog.Int64("size", fh.Size))
				abortWithMessage(c, http.StatusRequestEntityTooLarge, "File too large")
				return
			}

			data, err := readPart(fh)
			if err != nil {
				logger.Error("Failed to read attachment", slog.String("file", fh.Filename), slog.String("error", err.Error()))
				abortWithMessage(c, http.StatusBadRequest, "Invalid multipart form")
				return
			}

			declared := baseMIME(fh.Header.Get("Content-Type"))
			detected := mimetype.Detect(data)
			if !declaredTypeAllowed(declared, opts.AllowedTypes) || !isAllowedType(detected, opts.AllowedTypes) {
				logger.Warn("Rejected attachment type",
					slog.String("file", fh.Filename),
					slog.String("declared", declared),
					slog.String("detected", detected.String()))
				abortWithMessage(c, http.StatusBadRequest, "Unsupported file type")
				return
			}

			files = append(files, domain.UploadFile{
				FileName:    filepath.Base(fh.Filename),
				ContentType: baseMIME(detected.String()),
				Size:        int64(len(data)),
				Data:        data,
			})
		}

		c.Set(string(uploadedFilesKey), files)
		c.Next()
	}
}

// GetUploadedFiles returns the files accepted by UploadMiddleware, in submission order.
func GetUploadedFiles(c *gin.Context) []domain.UploadFile {
	val, exists := c.Get(string(uploadedFilesKey))
	if !exists {
		return nil
	}
	files, _ := val.([]domain.UploadFile)
	return files
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func isAllowedType(detected *mimetype.MIME, allowed []string) bool {
	for _, t := range allowed {
		if detected.Is(t) {
			return true
		}
	}
	return false
}

// declaredTypeAllowed accepts a missing or generic part header; the sniffed type still has to match.
func declaredTypeAllowed(declared string, allowed []string) bool {
	if declared == "" || declared == "application/octet-stream" {
		return true
	}
	for _, t := range allowed {
		if strings.EqualFold(declared, t) {
			return true
		}
	}
	return false
}

func baseMIME(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		return strings.TrimSpace(t[:i])
	}
	return t
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	// mime/multipart does not always wrap the reader error
	return strings.Contains(err.Error(), "request body too large")
}
