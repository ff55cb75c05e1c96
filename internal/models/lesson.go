package models

// SectionTypeAnki marks a lesson section whose sentences feed the review
// engine. Other section types (speaking drills, listening, etc.) are
// owned by the surrounding app and ignored here.
const SectionTypeAnki = "anki"

// Section is one block of a lesson day. Sentences are bilingual pairs
// joined by the "->" delimiter.
type Section struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Sentences []string `json:"sentences"`
}

// Day describes one lesson day's content.
type Day struct {
	DayNumber int       `json:"dayNumber"`
	Sections  []Section `json:"sections"`
}

// AnkiSection returns the day's first review-source section, if any.
func (d Day) AnkiSection() (Section, bool) {
	for _, s := range d.Sections {
		if s.Type == SectionTypeAnki {
			return s, true
		}
	}
	return Section{}, false
}
