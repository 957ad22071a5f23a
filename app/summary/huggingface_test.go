package summary

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHuggingFaceSummarize(t *testing.T) {
	var gotAuth string
	var gotReq hfRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode([]hfResult{{SummaryText: "A concise summary."}})
	}))
	defer server.Close()

	provider := NewHuggingFaceProvider(server.Client(), "hf_test", "test-model").WithBaseURL(server.URL)

	sum, err := provider.Summarize(context.Background(), "Title: body text", 35, 70)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sum != "A concise summary." {
		t.Errorf("Expected summary text, got '%s'", sum)
	}
	if gotAuth != "Bearer hf_test" {
		t.Errorf("Expected bearer auth, got '%s'", gotAuth)
	}
	if gotReq.Inputs != "Title: body text" {
		t.Errorf("Expected inputs passed through, got '%s'", gotReq.Inputs)
	}
	if gotReq.Parameters.MinLength != 35 || gotReq.Parameters.MaxLength != 70 {
		t.Errorf("Expected length bounds 35/70, got %d/%d", gotReq.Parameters.MinLength, gotReq.Parameters.MaxLength)
	}
}

func TestHuggingFaceModelLoading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(hfError{Error: "Model test-model is currently loading", EstimatedTime: 20})
	}))
	defer server.Close()

	provider := NewHuggingFaceProvider(server.Client(), "hf_test", "test-model").WithBaseURL(server.URL)

	_, err := provider.Summarize(context.Background(), "text", 35, 70)
	if !errors.Is(err, ErrModelLoading) {
		t.Errorf("Expected ErrModelLoading, got %v", err)
	}
}

func TestHuggingFaceHardFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"401 unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"503 without estimated time", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"overloaded"}`))
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty result", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[]"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			provider := NewHuggingFaceProvider(server.Client(), "hf_test", "test-model").WithBaseURL(server.URL)

			_, err := provider.Summarize(context.Background(), "text", 35, 70)
			if err == nil {
				t.Error("Expected error, got nil")
			}
			if errors.Is(err, ErrModelLoading) {
				t.Error("Hard failure must not be classified as model loading")
			}
		})
	}
}
