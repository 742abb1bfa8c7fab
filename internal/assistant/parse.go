package assistant

import "strings"

// parseDecision extracts the INTENT/PRODUCT_ID/RESPONSE line protocol
// from a model reply. Anything that does not parse falls back to a CHAT
// decision carrying the raw text, so a sloppy model answer still reaches
// the user as conversation.
func parseDecision(raw string) Decision {
	intent := IntentChat
	productID := ""
	var messageLines []string
	inResponse := false

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		s := strings.TrimSpace(line)
		upper := strings.ToUpper(s)

		switch {
		case strings.HasPrefix(upper, "INTENT:"):
			intent = Intent(strings.TrimSpace(upper[len("INTENT:"):]))
		case strings.HasPrefix(upper, "PRODUCT_ID:"):
			pid := strings.TrimSpace(s[len("PRODUCT_ID:"):])
			if pid != "" && !strings.EqualFold(pid, "NONE") {
				if digits := keepDigits(pid); digits != "" {
					productID = digits
				}
			}
		case strings.HasPrefix(upper, "RESPONSE:"):
			inResponse = true
			if rest := strings.TrimSpace(s[len("RESPONSE:"):]); rest != "" {
				messageLines = append(messageLines, rest)
			}
		case inResponse:
			messageLines = append(messageLines, s)
		}
	}

	message := raw
	if len(messageLines) > 0 {
		message = strings.Join(messageLines, " ")
	}

	return Decision{Intent: intent, ProductID: productID, Reply: message}
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
