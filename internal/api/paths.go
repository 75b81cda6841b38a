// Package api provides the Gemini API client implementation.
package api

// GJSON paths for extracting values from Gemini responses.
const (
	// Streamed chunk paths
	PathParts        = "candidates.0.content.parts"
	PathFinishReason = "candidates.0.finishReason"
	PathBlockReason  = "promptFeedback.blockReason"

	// Part paths (relative to a part object)
	PathPartText    = "text"
	PathPartThought = "thought"

	// Error body paths
	PathErrorRoot    = "error"
	PathErrorMessage = "error.message"
	PathErrorCode    = "error.code"
	PathErrorStatus  = "error.status"
	PathErrorReasons = "error.details.#.reason"

	// Model metadata paths
	PathModelName = "name"
)

// Error reasons reported in error.details
const (
	ReasonAPIKeyInvalid = "API_KEY_INVALID"
	ReasonAPIKeyExpired = "API_KEY_EXPIRED"
)

// blockedFinishReasons end a stream because the reply was filtered
var blockedFinishReasons = map[string]bool{
	"SAFETY":             true,
	"RECITATION":         true,
	"BLOCKLIST":          true,
	"PROHIBITED_CONTENT": true,
	"SPII":               true,
}
