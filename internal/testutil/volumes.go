package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// VolumesResponder decides the answer for the call-th request (1-based).
type VolumesResponder func(call, startIndex int) (status int, body string)

// VolumesServer is a fake Google Books API serving /volumes.
type VolumesServer struct {
	*httptest.Server

	mu           sync.Mutex
	startIndexes []int
	subjects     []string
}

// NewVolumesServer starts a fake API that answers with respond and is shut
// down when the test completes.
func NewVolumesServer(t *testing.T, respond VolumesResponder) *VolumesServer {
	t.Helper()

	vs := &VolumesServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/volumes", func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("startIndex"))

		vs.mu.Lock()
		vs.startIndexes = append(vs.startIndexes, start)
		vs.subjects = append(vs.subjects, r.URL.Query().Get("q"))
		call := len(vs.startIndexes)
		vs.mu.Unlock()

		status, body := respond(call, start)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})

	vs.Server = httptest.NewServer(mux)
	t.Cleanup(vs.Close)
	return vs
}

// StaticVolumes answers every request with the same payload.
func StaticVolumes(body string) VolumesResponder {
	return func(int, int) (int, string) {
		return http.StatusOK, body
	}
}

// FailOnCall answers call number failing with a 500 and every other call
// with body.
func FailOnCall(failing int, body string) VolumesResponder {
	return func(call, _ int) (int, string) {
		if call == failing {
			return http.StatusInternalServerError, `{"error": {"message": "backend error"}}`
		}
		return http.StatusOK, body
	}
}

// StartIndexes returns the startIndex of every request received so far.
func (vs *VolumesServer) StartIndexes() []int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return append([]int(nil), vs.startIndexes...)
}

// Queries returns the q parameter of every request received so far.
func (vs *VolumesServer) Queries() []string {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return append([]string(nil), vs.subjects...)
}

// TitlesPayload builds a volumes response listing one volume per title.
func TitlesPayload(totalItems int, titles ...string) string {
	type volumeInfo struct {
		Title string `json:"title"`
	}
	type volume struct {
		VolumeInfo volumeInfo `json:"volumeInfo"`
	}
	payload := struct {
		TotalItems int      `json:"totalItems"`
		Items      []volume `json:"items"`
	}{TotalItems: totalItems, Items: []volume{}}

	for _, title := range titles {
		payload.Items = append(payload.Items, volume{VolumeInfo: volumeInfo{Title: title}})
	}

	out, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return string(out)
}
