// Package models contains data types and constants for the Gemini API.
package models

// Endpoints for the Gemini generative language API
const (
	EndpointBase = "https://generativelanguage.googleapis.com/v1beta"

	// PathModels is joined with a model name, e.g. models/gemini-2.5-flash
	PathModels = "models"

	// ActionStreamGenerate is appended to a model path to stream a reply
	ActionStreamGenerate = ":streamGenerateContent"
)

// HeaderAPIKey carries the API key. Keeping it out of the query string
// keeps it out of URLs, logs and error text.
const HeaderAPIKey = "x-goog-api-key"

// Model represents a selectable Gemini model
type Model struct {
	Name        string
	DisplayName string
	Description string
}

// Available models
var (
	Model15FlashLatest = Model{
		Name:        "gemini-1.5-flash-latest",
		DisplayName: "Gemini 1.5 Flash (latest)",
		Description: "Fast general purpose model",
	}

	Model25FlashLite = Model{
		Name:        "gemini-2.5-flash-lite",
		DisplayName: "Gemini 2.5 Flash-Lite",
		Description: "Lowest latency 2.5 model",
	}

	Model25Flash = Model{
		Name:        "gemini-2.5-flash",
		DisplayName: "Gemini 2.5 Flash",
		Description: "Balanced speed and quality",
	}

	Model25Pro = Model{
		Name:        "gemini-2.5-pro",
		DisplayName: "Gemini 2.5 Pro",
		Description: "Most capable 2.5 model",
	}

	Model20Flash = Model{
		Name:        "gemini-2.0-flash",
		DisplayName: "Gemini 2.0 Flash",
		Description: "Previous generation flash model",
	}

	Model20FlashLite = Model{
		Name:        "gemini-2.0-flash-lite",
		DisplayName: "Gemini 2.0 Flash-Lite",
		Description: "Previous generation lite model",
	}

	ModelGemma3nE2B = Model{
		Name:        "gemma-3n-e2b-it",
		DisplayName: "Gemma 3n E2B",
		Description: "Open model, 2B effective parameters",
	}

	ModelGemma3nE4B = Model{
		Name:        "gemma-3n-e4b-it",
		DisplayName: "Gemma 3n E4B",
		Description: "Open model, 4B effective parameters",
	}

	ModelGemma3_27B = Model{
		Name:        "gemma-3-27b-it",
		DisplayName: "Gemma 3 27B",
		Description: "Largest open Gemma 3 model",
	}

	// DefaultModel is preselected on the configuration screen
	DefaultModel = Model15FlashLatest
)

// AllModels returns the supported models in display order
func AllModels() []Model {
	return []Model{
		Model15FlashLatest,
		Model25FlashLite,
		Model25Flash,
		Model25Pro,
		Model20Flash,
		Model20FlashLite,
		ModelGemma3nE2B,
		ModelGemma3nE4B,
		ModelGemma3_27B,
	}
}

// ModelNames returns the names of AllModels in the same order
func ModelNames() []string {
	all := AllModels()
	names := make([]string, len(all))
	for i, m := range all {
		names[i] = m.Name
	}
	return names
}

// ModelFromName returns a Model by its name
func ModelFromName(name string) (Model, bool) {
	for _, m := range AllModels() {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// IsSupported reports whether name is one of AllModels
func IsSupported(name string) bool {
	_, ok := ModelFromName(name)
	return ok
}

// IndexOf returns the position of name in AllModels, or -1
func IndexOf(name string) int {
	for i, m := range AllModels() {
		if m.Name == name {
			return i
		}
	}
	return -1
}

// DefaultHeaders returns the headers sent with every API request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "geminichat/1.0",
	}
}

// StreamHeaders returns the headers for a streaming generate request
func StreamHeaders() map[string]string {
	h := DefaultHeaders()
	h["Accept"] = "text/event-stream"
	h["Cache-Control"] = "no-cache"
	return h
}
