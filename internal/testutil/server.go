package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// CompletionReply is what the fake server returns for one request.
// A nil Content is encoded as JSON null.
type CompletionReply struct {
	Status  int
	Content *string
}

// Reply returns a 200 reply with the given text.
func Reply(text string) CompletionReply {
	return CompletionReply{Status: http.StatusOK, Content: &text}
}

// CompletionRequest records one request seen by the fake server.
type CompletionRequest struct {
	Model         string
	Prompt        string
	Authorization string
}

// CompletionHandler decides the reply for a request.
type CompletionHandler func(model, prompt string) CompletionReply

// CompletionServer is an OpenAI-compatible chat completions fake.
type CompletionServer struct {
	BaseURL string
	Close   func()

	mu       sync.Mutex
	requests []CompletionRequest
}

// Requests returns a snapshot of every request received so far.
func (s *CompletionServer) Requests() []CompletionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CompletionRequest(nil), s.requests...)
}

// Count returns the number of requests received so far.
func (s *CompletionServer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// StartCompletionServer launches an in-memory server answering
// POST /chat/completions with handler. The server is closed on cleanup.
func StartCompletionServer(t testing.TB, handler CompletionHandler) *CompletionServer {
	t.Helper()
	instance := &CompletionServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		prompt := ""
		if len(body.Messages) > 0 {
			prompt = body.Messages[len(body.Messages)-1].Content
		}
		instance.mu.Lock()
		instance.requests = append(instance.requests, CompletionRequest{
			Model:         body.Model,
			Prompt:        prompt,
			Authorization: r.Header.Get("Authorization"),
		})
		instance.mu.Unlock()

		reply := handler(body.Model, prompt)
		if reply.Status == 0 {
			reply.Status = http.StatusOK
		}
		if reply.Status < 200 || reply.Status >= 300 {
			http.Error(w, "upstream failure", reply.Status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.Status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply.Content}},
			},
		})
	})
	server := httptest.NewServer(mux)
	instance.BaseURL = server.URL
	instance.Close = server.Close
	t.Cleanup(server.Close)
	return instance
}
