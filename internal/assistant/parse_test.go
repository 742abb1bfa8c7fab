package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Decision
	}{
		{
			name: "well formed",
			raw:  "INTENT: ADD_TO_CART\nPRODUCT_ID: 3\nRESPONSE: Added the headphones for you.",
			want: Decision{Intent: IntentAddToCart, ProductID: "3", Reply: "Added the headphones for you."},
		},
		{
			name: "no product",
			raw:  "INTENT: CHAT\nPRODUCT_ID: NONE\nRESPONSE: Happy to help!",
			want: Decision{Intent: IntentChat, Reply: "Happy to help!"},
		},
		{
			name: "multiline response joined with spaces",
			raw:  "INTENT: BROWSE\nPRODUCT_ID: NONE\nRESPONSE: We have headphones,\nwatches and shoes.",
			want: Decision{Intent: IntentBrowse, Reply: "We have headphones, watches and shoes."},
		},
		{
			name: "product id with surrounding junk",
			raw:  "INTENT: ADD_TO_CART\nPRODUCT_ID: ID 12.\nRESPONSE: Done.",
			want: Decision{Intent: IntentAddToCart, ProductID: "12", Reply: "Done."},
		},
		{
			name: "lowercase markers",
			raw:  "intent: view_cart\nproduct_id: none\nresponse: Here is your cart.",
			want: Decision{Intent: IntentViewCart, Reply: "Here is your cart."},
		},
		{
			name: "free text falls back to chat with raw reply",
			raw:  "I could not follow the format, sorry.",
			want: Decision{Intent: IntentChat, Reply: "I could not follow the format, sorry."},
		},
		{
			name: "empty product id ignored",
			raw:  "INTENT: ADD_TO_CART\nPRODUCT_ID:\nRESPONSE: Which one?",
			want: Decision{Intent: IntentAddToCart, Reply: "Which one?"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDecision(tt.raw))
		})
	}
}
