package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush1817-lab/UCP/internal/domain"
)

func geminiReply(text string) geminiResponse {
	var out geminiResponse
	out.Candidates = []struct {
		Content geminiContent `json:"content"`
	}{
		{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
	}
	return out
}

func newTestClassifier(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *GeminiClassifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGeminiClassifier("test-key", "", timeout)
	g.baseURL = srv.URL
	return g
}

func sampleRequest() Request {
	return Request{
		Message: "add the headphones",
		Products: []domain.Product{
			{ID: "1", Name: "Headphones", Brand: "SoundMax", Category: "electronics", Price: 89.99},
		},
		RecentHistory: []string{"User: hi", "Agent: hello"},
	}
}

func TestGeminiClassifier_Classify(t *testing.T) {
	var gotPrompt string
	g := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotPrompt = req.Contents[0].Parts[0].Text

		json.NewEncoder(w).Encode(geminiReply("INTENT: ADD_TO_CART\nPRODUCT_ID: 1\nRESPONSE: Adding them now."))
	}, time.Second)

	d := g.Classify(context.Background(), sampleRequest())

	assert.Equal(t, IntentAddToCart, d.Intent)
	assert.Equal(t, "1", d.ProductID)
	assert.Equal(t, "Adding them now.", d.Reply)

	// The prompt carries catalog, history and the user message.
	assert.Contains(t, gotPrompt, "ID:1 - Headphones (SoundMax)")
	assert.Contains(t, gotPrompt, "User: hi")
	assert.Contains(t, gotPrompt, "USER: add the headphones")
}

func TestGeminiClassifier_ServerErrorDegradesToChat(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, time.Second)

	d := g.Classify(context.Background(), sampleRequest())

	assert.Equal(t, IntentChat, d.Intent)
	assert.Empty(t, d.ProductID)
	assert.NotEmpty(t, d.Reply)
}

func TestGeminiClassifier_TimeoutDegradesToChat(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(geminiReply("INTENT: CHAT\nPRODUCT_ID: NONE\nRESPONSE: too late"))
	}, 20*time.Millisecond)

	d := g.Classify(context.Background(), sampleRequest())

	assert.Equal(t, IntentChat, d.Intent)
	assert.NotEmpty(t, d.Reply)
}

func TestGeminiClassifier_EmptyCandidatesDegradeToChat(t *testing.T) {
	g := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse{})
	}, time.Second)

	d := g.Classify(context.Background(), sampleRequest())

	assert.Equal(t, IntentChat, d.Intent)
	assert.NotEmpty(t, d.Reply)
}
