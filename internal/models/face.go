package models

// MatchThreshold is the confidence at or above which a recognition result
// counts as a positive match.
const MatchThreshold = 0.6

// FaceMatch is one recognition result for a submitted frame.
type FaceMatch struct {
	Name       string  `json:"name"`
	Relation   string  `json:"relation"`
	Confidence float64 `json:"confidence"`
}

// Matched reports whether the result clears the match threshold.
func (m FaceMatch) Matched() bool { return m.Confidence >= MatchThreshold }
