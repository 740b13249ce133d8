package web

// handlers.go implements the conversion endpoints.
//
// Two conversion routes mirror the two output shapes of the engine:
//   POST /api/convert         raw row dump of the uploaded file
//   POST /api/convert/config  validated key/value configuration
//
// Upload handling (multipart parsing, size limit, extension check via
// the decoder) is shared by both. The config route returns 400 when no
// configuration entry could be produced at all; partial success is 200
// with messages alongside the data.

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"sheet2json/internal/convert"
	"sheet2json/internal/history"
	"sheet2json/internal/logging"
	"sheet2json/internal/sheet"
)

// messagesResponse is the body of a rejected config conversion.
type messagesResponse struct {
	Messages []string `json:"messages"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/app", http.StatusFound)
}

func (s *Server) handleApp(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/app.html")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "ui page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "sheet2json is up",
	})
}

// handleConvertRows dumps the uploaded file as raw rows.
func (s *Server) handleConvertRows(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	doc, filename, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := convert.ConvertRows(doc)
	s.record(r, filename, convert.ModeRows, doc, res, time.Since(start))
	writeJSON(w, http.StatusOK, res)
}

// handleConvertConfig validates the uploaded file into a key/value
// configuration map.
func (s *Server) handleConvertConfig(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	doc, filename, err := s.readUpload(w, r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sh := doc.Sheets[0]
	if convert.Resolve(sh.Headers) != convert.ModeConfig {
		writeJSON(w, http.StatusBadRequest, messagesResponse{
			Messages: []string{"The 'key' and 'value' columns are required."},
		})
		return
	}
	if len(sh.Rows) == 0 {
		writeJSON(w, http.StatusBadRequest, messagesResponse{
			Messages: []string{"No data rows found."},
		})
		return
	}

	res := convert.ConvertConfig(sh)
	s.record(r, filename, convert.ModeConfig, doc, res, time.Since(start))

	if len(res.Data.(map[string]any)) == 0 {
		writeJSON(w, http.StatusBadRequest, messagesResponse{
			Messages: append(res.Messages, "No valid entries were produced."),
		})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleHistory returns recent conversion records. With history
// disabled the list is simply empty.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.history.Recent(r.Context(), 50)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "unable to load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": records})
}

// readUpload extracts and decodes the uploaded spreadsheet from the
// multipart form field "file".
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*sheet.Document, string, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		return nil, "", errors.New("file too large or invalid form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", errors.New("no file provided")
	}
	defer file.Close()

	doc, err := sheet.Decode(header.Filename, file)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode %q: %w", header.Filename, err)
	}
	return doc, header.Filename, nil
}

// record stores a conversion in the history table, logging rather than
// failing the request when the write goes wrong.
func (s *Server) record(r *http.Request, filename string, mode convert.Mode, doc *sheet.Document, res convert.Result, dur time.Duration) {
	if !s.history.Enabled() {
		return
	}

	rows := 0
	for _, sh := range doc.Sheets {
		rows += len(sh.Rows)
	}

	err := s.history.Add(r.Context(), history.Record{
		FileName: filename,
		Mode:     mode.String(),
		Rows:     rows,
		Entries:  entryCount(res),
		Messages: len(res.Messages),
		Duration: dur.Milliseconds(),
	})
	if err != nil {
		logging.FromContext(r.Context()).Warn("failed to record conversion", "error", err)
	}
}

// entryCount counts the data items a result carries, across both
// output shapes.
func entryCount(res convert.Result) int {
	switch data := res.Data.(type) {
	case map[string]any:
		return len(data)
	case []map[string]any:
		return len(data)
	case map[string][]map[string]any:
		n := 0
		for _, rows := range data {
			n += len(rows)
		}
		return n
	default:
		return 0
	}
}
