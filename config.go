package main

// Default configuration values
const (
	DefaultPort = "8080"
)

// WebhookPresets maps friendly names to extraction webhook URLs
var WebhookPresets = map[string]string{
	"local":  "http://localhost:8090/hooks/extract",
	"docker": "http://extractor:8090/hooks/extract",
}

// ResolveWebhookURL resolves a webhook identifier to a URL
// If the input is a preset name, returns the corresponding URL
// Otherwise, returns the input as-is (assuming it's a direct URL)
func ResolveWebhookURL(input string) string {
	if url, exists := WebhookPresets[input]; exists {
		return url
	}
	return input
}
