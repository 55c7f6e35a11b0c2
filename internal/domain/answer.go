package domain

// FallbackSource is cited whenever a reply carries no usable sources.
const FallbackSource = "General finance reference: Investopedia"

// ErrorMarker prefixes Answer when the upstream model call fails. Callers
// have no other signal that a reply is an error report.
const ErrorMarker = "⚠️ Error: "

// Answer is the response shape returned for every question. Sources is
// never empty: FallbackSource fills it when extraction yields nothing.
type Answer struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}
