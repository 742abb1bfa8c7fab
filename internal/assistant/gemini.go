package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 15 * time.Second

	defaultBaseURL = "https://generativelanguage.googleapis.com"
)

// GeminiClassifier classifies messages through the Gemini generateContent
// API. The call is the one externally-blocking operation in the system:
// it runs under a bounded timeout and behind a circuit breaker, and every
// failure mode degrades to a CHAT decision.
type GeminiClassifier struct {
	apiKey  string
	model   string
	timeout time.Duration
	baseURL string

	client  *http.Client
	breaker *gobreaker.CircuitBreaker[string]
}

func NewGeminiClassifier(apiKey, model string, timeout time.Duration) *GeminiClassifier {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiClassifier{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		breaker: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name: "gemini-classifier",
		}),
	}
}

func (g *GeminiClassifier) Classify(ctx context.Context, req Request) Decision {
	raw, err := g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, req)
	})
	if err != nil {
		slog.Warn("classifier call failed, degrading to chat", "error", err)
		return Decision{
			Intent: IntentChat,
			Reply:  fmt.Sprintf("Sorry, I encountered an error: %v", err),
		}
	}
	return parseDecision(raw)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClassifier) generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", ErrClassifierUnavailable, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrClassifierUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrClassifierUnavailable, resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrClassifierUnavailable, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrClassifierUnavailable)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(req Request) string {
	var products strings.Builder
	for _, p := range req.Products {
		fmt.Fprintf(&products, "ID:%s - %s (%s) - $%v - %s\n", p.ID, p.Name, p.Brand, p.Price, p.Category)
	}

	lastProduct := "None"
	if req.LastMentioned != nil {
		lastProduct = fmt.Sprintf("ID:%s - %s", req.LastMentioned.ID, req.LastMentioned.Name)
	}

	history := "None"
	if len(req.RecentHistory) > 0 {
		history = strings.Join(req.RecentHistory, "\n")
	}

	return fmt.Sprintf(`You are a shopping assistant.

AVAILABLE PRODUCTS:
%s
LAST DISCUSSED PRODUCT: %s

CONVERSATION:
%s

USER: %s

Determine intent and respond in this EXACT format:

INTENT: [BROWSE/ADD_TO_CART/VIEW_CART/CHECKOUT/CHAT]
PRODUCT_ID: [number or NONE]
RESPONSE: [Your helpful message]

Important: If user wants to add a product, identify the correct PRODUCT_ID from the list above.`,
		products.String(), lastProduct, history, req.Message)
}
