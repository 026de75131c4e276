package httpapi

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"
)

// The callback endpoint is loaded in a window the external editor opened, so
// every response is fully permissive: the page itself relays the result back
// to the dashboard window via postMessage and the dashboard filters by
// origin.
func pixlrCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Client-Info, Apikey")
}

var cancelPage = template.Must(template.New("cancel").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Editing Cancelled</title>
  <style>
    body {
      font-family: sans-serif;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
      margin: 0;
      background: linear-gradient(135deg, #f5f3ff 0%, #fce7f3 50%, #dbeafe 100%);
    }
    .message {
      text-align: center;
      background: white;
      padding: 40px;
      border-radius: 12px;
      box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
    }
  </style>
</head>
<body>
  <div class="message">
    <h1>Editing Cancelled</h1>
    <p>You can close this window.</p>
  </div>
  <script>
    if (window.opener) {
      window.opener.postMessage({
        type: 'pixlr-cancel'
      }, window.location.origin);
      setTimeout(() => window.close(), 1000);
    }
  </script>
</body>
</html>
`))

var processingPage = template.Must(template.New("processing").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Processing Image</title>
  <style>
    body {
      font-family: sans-serif;
      display: flex;
      align-items: center;
      justify-content: center;
      min-height: 100vh;
      margin: 0;
      background: linear-gradient(135deg, #f5f3ff 0%, #fce7f3 50%, #dbeafe 100%);
    }
    .message {
      text-align: center;
      background: white;
      padding: 40px;
      border-radius: 12px;
      box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
    }
    .spinner {
      border: 4px solid #f3f4f6;
      border-top: 4px solid #7c3aed;
      border-radius: 50%;
      width: 40px;
      height: 40px;
      animation: spin 1s linear infinite;
      margin: 20px auto;
    }
    @keyframes spin {
      0% { transform: rotate(0deg); }
      100% { transform: rotate(360deg); }
    }
  </style>
</head>
<body>
  <div class="message">
    <h1>Saving Your Edits...</h1>
    <div class="spinner"></div>
    <p>Please wait while we process your image.</p>
  </div>
  <script>
    async function processImage() {
      try {
        const imageUrl = {{.ImageURL}};
        const assetId = {{.AssetID}};

        const response = await fetch(imageUrl);
        const blob = await response.blob();

        const reader = new FileReader();
        reader.onloadend = function() {
          const base64data = reader.result;

          if (window.opener) {
            window.opener.postMessage({
              type: 'pixlr-callback',
              imageData: base64data,
              assetId: assetId
            }, window.location.origin);

            setTimeout(() => {
              window.close();
            }, 500);
          } else {
            document.body.innerHTML = '<div class="message"><h1>Success!</h1><p>You can close this window.</p></div>';
          }
        };

        reader.readAsDataURL(blob);

      } catch (error) {
        console.error('Error processing image:', error);

        if (window.opener) {
          window.opener.postMessage({
            type: 'pixlr-error',
            message: 'Failed to process edited image'
          }, window.location.origin);
        }

        document.body.innerHTML = '<div class="message"><h1 style="color: #dc2626;">Error</h1><p>Failed to process the image. Please try again.</p></div>';
      }
    }

    processImage();
  </script>
</body>
</html>
`))

type processingPageData struct {
	ImageURL string
	AssetID  string
}

type pixlrAck struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    pixlrAckData `json:"data"`
}

type pixlrAckData struct {
	AssetID    string `json:"assetId"`
	UserID     string `json:"userId"`
	ReceivedAt string `json:"receivedAt"`
}

type pixlrFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handlePixlrCallback serves the editor's exit and save redirects. The GET
// variants render small HTML pages whose only job is to hand the result to
// the window that opened the editor; the POST variant just acknowledges
// receipt so direct form targets get a well-formed answer.
func (s *Server) handlePixlrCallback(w http.ResponseWriter, r *http.Request) {
	pixlrCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	q := r.URL.Query()
	assetID := q.Get("assetId")
	uid := q.Get("userId")

	if r.Method == http.MethodGet {
		if q.Get("state") == "cancel" {
			s.renderPage(w, r, cancelPage, nil)
			return
		}
		if imageURL := q.Get("image"); imageURL != "" && q.Get("type") == "image" {
			s.renderPage(w, r, processingPage, processingPageData{ImageURL: imageURL, AssetID: assetID})
			return
		}
	}

	if r.Method == http.MethodPost {
		// The payload itself is unused: the image travels back through the
		// relay pages. Accepting the POST keeps editors configured with a
		// form target from seeing an error.
		if err := drainPixlrPayload(r); err != nil {
			writeJSON(w, http.StatusInternalServerError, pixlrFailure{Success: false, Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, pixlrAck{
			Success: true,
			Message: "Image received",
			Data: pixlrAckData{
				AssetID:    assetID,
				UserID:     uid,
				ReceivedAt: time.Now().UTC().Format(time.RFC3339),
			},
		})
		return
	}

	writeJSON(w, http.StatusMethodNotAllowed, pixlrFailure{Success: false, Message: "Invalid request method"})
}

// drainPixlrPayload reads whatever body shape the editor sent, JSON or
// multipart form, and discards it. A malformed body is the only error the
// POST branch can produce.
func drainPixlrPayload(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "application/json"):
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	case strings.Contains(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html")
	if err := page.Execute(w, data); err != nil {
		s.logger.Error(r.Context(), "render callback page", "error", err)
	}
}
