package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/socialboard/socialboard/internal/common"
	"github.com/socialboard/socialboard/internal/editsession"
)

// maxUploadBytes bounds multipart asset uploads.
const maxUploadBytes = 32 << 20

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	list, err := s.assets.List(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleUploadAsset accepts a multipart form with a "file" part plus "title"
// and "type" fields.
func (s *Server) handleUploadAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, err)
		return
	}

	kind := r.FormValue("type")
	if kind == "" {
		kind = "image"
	}
	contentType := header.Header.Get("Content-Type")

	asset, err := s.assets.Upload(r.Context(), userID(r), r.FormValue("title"), kind, data, contentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := s.assets.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

type presignRequest struct {
	Key string `json:"key"`
}

type presignResponse struct {
	URL       string `json:"url"`
	PublicURL string `json:"public_url"`
}

// handlePresignAsset hands out a short-lived PUT URL so large files can skip
// the API process entirely.
func (s *Server) handlePresignAsset(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeError(w, common.ErrorValidation)
		return
	}

	url, err := s.assets.PresignUpload(r.Context(), req.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presignResponse{URL: url, PublicURL: s.assets.PublicURL(req.Key)})
}

type editURLResponse struct {
	URL           string `json:"url"`
	EditTimeoutMs int64  `json:"edit_timeout_ms,omitempty"`
}

// handleAssetEditURL hands the dashboard a ready-made external editor URL for
// one asset. The callback target is fixed to this host so the editor can only
// post results back through /pixlr/callback.
func (s *Server) handleAssetEditURL(w http.ResponseWriter, r *http.Request) {
	asset, err := s.assets.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	opts := editsession.Options{
		Origin:      s.config.HostOrigin,
		EditorURL:   s.config.EditorURL,
		CallbackURL: s.config.HostOrigin + "/pixlr/callback",
		EditTimeout: s.config.EditTimeout,
	}
	url := opts.EditorURLFor(editsession.EditRequest{
		AssetID:  asset.ID,
		UserID:   userID(r),
		ImageURL: asset.URL,
		Title:    asset.Title,
		ExitURL:  s.config.HostOrigin,
	})

	writeJSON(w, http.StatusOK, editURLResponse{
		URL:           url,
		EditTimeoutMs: opts.EditTimeout.Milliseconds(),
	})
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.assets.Delete(r.Context(), r.PathValue("id"), userID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type applyEditedRequest struct {
	ImageData string `json:"imageData"`
}

type applyEditedResponse struct {
	URL string `json:"url"`
}

// handleApplyEditedImage is the JSON twin of the relay message flow: the
// dashboard posts the edited data URI here after receiving it from the
// callback window.
func (s *Server) handleApplyEditedImage(w http.ResponseWriter, r *http.Request) {
	var req applyEditedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		writeError(w, common.ErrorValidation)
		return
	}

	url, err := s.assets.ApplyEditedImage(r.Context(), userID(r), r.PathValue("id"), req.ImageData)
	if err != nil {
		s.logger.Error(r.Context(), "apply edited image", "asset_id", r.PathValue("id"), "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, applyEditedResponse{URL: url})
}
