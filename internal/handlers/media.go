package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"brainhints/backend/internal/httpjson"
	"brainhints/backend/internal/media"
)

// Media serves the admin upload endpoints.
type Media struct {
	svc    *media.Service
	signer *media.Signer
}

func NewMedia(svc *media.Service, signer *media.Signer) *Media {
	return &Media{svc: svc, signer: signer}
}

// multipart parts above this spill to temp files
const memoryLimit = 32 << 20

// Upload accepts multipart form fields "file" and "kind" (image|video).
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Enabled() {
		httpjson.Error(w, http.StatusServiceUnavailable, media.ErrNotConfigured.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxVideoBytes+(1<<20))
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			httpjson.Error(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		httpjson.Error(w, http.StatusBadRequest, "expected multipart/form-data with a file field")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	kind, ok := media.ParseKind(r.FormValue("kind"))
	if !ok {
		httpjson.Error(w, http.StatusBadRequest, "kind must be image or video")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	asset, err := h.svc.Upload(r.Context(), media.File{
		Kind:        kind,
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        file,
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, asset)
}

// Delete removes an asset by ?publicId=&kind=.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, _ := media.ParseKind(q.Get("kind"))
	if err := h.svc.Delete(r.Context(), q.Get("publicId"), kind); err != nil {
		h.fail(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"deleted": true})
}

func (h *Media) CreateSignedUploadURL(w http.ResponseWriter, r *http.Request) {
	var req media.SignedURLRequest
	if err := httpjson.Read(w, r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Kind = media.Kind(strings.ToLower(string(req.Kind)))
	out, err := h.signer.Sign(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, out)
}

// DeleteObject removes a Cloud Storage upload by ?objectPath=.
func (h *Media) DeleteObject(w http.ResponseWriter, r *http.Request) {
	if err := h.signer.DeleteObject(r.Context(), r.URL.Query().Get("objectPath")); err != nil {
		h.fail(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"deleted": true})
}

type signedURLsReq struct {
	Items []media.SignedURLRequest `json:"items"`
}

// CreateSignedUploadURLs signs several uploads; failed items come back with an error message.
func (h *Media) CreateSignedUploadURLs(w http.ResponseWriter, r *http.Request) {
	var req signedURLsReq
	if err := httpjson.Read(w, r, &req); err != nil || len(req.Items) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "items is required")
		return
	}
	if len(req.Items) > 20 {
		httpjson.Error(w, http.StatusBadRequest, "at most 20 items per request")
		return
	}

	type item struct {
		*media.SignedURL
		Error string `json:"error,omitempty"`
	}
	out := make([]item, 0, len(req.Items))
	for _, it := range req.Items {
		it.Kind = media.Kind(strings.ToLower(string(it.Kind)))
		s, err := h.signer.Sign(r.Context(), it)
		if err != nil {
			out = append(out, item{Error: err.Error()})
			continue
		}
		out = append(out, item{SignedURL: s})
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"items": out})
}

func (h *Media) fail(w http.ResponseWriter, err error) {
	switch {
	case media.IsErrBadRequest(err):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case media.IsErrTooLarge(err):
		httpjson.Error(w, http.StatusRequestEntityTooLarge, err.Error())
	case media.IsErrNotConfigured(err):
		httpjson.Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("[Media] %v", err)
		httpjson.Error(w, http.StatusBadGateway, "media provider error")
	}
}
