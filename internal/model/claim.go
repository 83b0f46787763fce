package model

// Claim represents a single factual statement extracted from a document,
// tracked individually by the review workflow.
type Claim struct {
	ID        string    `json:"id"`                  // Stable fingerprint ("claim-" + 8 hex)
	Text      string    `json:"text"`                // The claim text itself
	Location  string    `json:"location"`            // Structural address: heading-slug/ordinal
	Type      ClaimType `json:"type,omitempty"`      // Rough category, from the matched keyword
	Heuristic string    `json:"heuristic,omitempty"` // Which extraction rule matched (e.g., "keyword:must")
	Sentence  int       `json:"sentence,omitempty"`  // Sentence index within the section (0-based)
}

// ClaimType categorizes the nature of the claim
type ClaimType string

const (
	ClaimTypeFactual     ClaimType = "factual"     // Verifiable statements of fact
	ClaimTypeNormative   ClaimType = "normative"   // Requirements ("must", "shall")
	ClaimTypeAttribution ClaimType = "attribution" // Claims about who said/did something
	ClaimTypeDefinition  ClaimType = "definition"  // Definitional claims
)
