//go:build integration

package steps

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"

	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/drive"
)

// fakeUpload is what the fake Drive endpoint received
type fakeUpload struct {
	Name     string
	MimeType string
	Parents  []string
	Parts    int
}

// fakeGoogle serves the OAuth token endpoint and the Drive upload endpoint
type fakeGoogle struct {
	server *httptest.Server

	mu             sync.Mutex
	refreshToken   string
	revoked        bool
	exchangeStatus int
	exchangeBody   string
	uploadStatus   int
	uploads        []fakeUpload
	nextFileID     int
}

func newFakeGoogle() *fakeGoogle {
	f := &fakeGoogle{
		exchangeStatus: http.StatusOK,
		exchangeBody:   `{"access_token": "a", "refresh_token": "refresh-123", "token_type": "Bearer", "expires_in": 3599}`,
		uploadStatus:   http.StatusOK,
		nextFileID:     1,
	}
	f.server = httptest.NewServer(f)
	return f
}

func (f *fakeGoogle) Close() {
	f.server.Close()
}

func (f *fakeGoogle) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/token":
		f.serveToken(w, r)
	case "/upload/drive/v3/files":
		f.serveUpload(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeGoogle) serveToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		w.WriteHeader(f.exchangeStatus)
		fmt.Fprint(w, f.exchangeBody)
	case "refresh_token":
		if f.revoked || r.PostForm.Get("refresh_token") != f.refreshToken {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "invalid_grant", "error_description": "Token has been expired or revoked."}`)
			return
		}
		fmt.Fprint(w, `{"access_token": "access-token", "token_type": "Bearer", "expires_in": 3599}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "unsupported_grant_type"}`)
	}
}

func (f *fakeGoogle) serveUpload(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer access-token" {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": {"code": 401, "message": "Invalid Credentials"}}`)
		return
	}

	_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	upload := fakeUpload{}
	reader := multipart.NewReader(r.Body, params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"error": {"message": %q}}`, err.Error())
			return
		}
		data, _ := io.ReadAll(part)
		if upload.Parts == 0 {
			json.Unmarshal(data, &upload)
		}
		upload.Parts++
	}
	f.uploads = append(f.uploads, upload)

	if f.uploadStatus != http.StatusOK {
		w.WriteHeader(f.uploadStatus)
		fmt.Fprintf(w, `{"error": {"code": %d, "message": "The user does not have sufficient permissions for this file."}}`, f.uploadStatus)
		return
	}

	fileID := fmt.Sprintf("uploaded-file-%d", f.nextFileID)
	f.nextFileID++
	fmt.Fprintf(w, `{"kind": "drive#file", "id": %q, "name": %q}`, fileID, upload.Name)
}

func (f *fakeGoogle) lastUpload() (fakeUpload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.uploads) == 0 {
		return fakeUpload{}, false
	}
	return f.uploads[len(f.uploads)-1], true
}

// oauthClient returns an OAuth client pointed at the fake
func (f *fakeGoogle) oauthClient(cfg delivery.Config) *drive.OAuthClient {
	return drive.NewOAuthClient(cfg,
		drive.WithEndpoint(f.server.URL+"/auth", f.server.URL+"/token"),
		drive.WithOAuthHTTPClient(f.server.Client()),
	)
}

// driveClient returns an upload client pointed at the fake
func (f *fakeGoogle) driveClient() *drive.Client {
	return drive.NewClient(
		drive.WithHTTPClient(f.server.Client()),
		drive.WithUploadURL(f.server.URL+"/upload/drive/v3/files"),
	)
}
