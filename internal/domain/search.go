package domain

// SearchResults groups cross-resource search hits by resource type.
// Every slice is non-nil so the JSON encoding always contains all four
// groups, empty or not.
type SearchResults struct {
	Trips       []Trip          `json:"trips"`
	Itineraries []Itinerary     `json:"itineraries"`
	Events      []CalendarEvent `json:"events"`
	Journals    []JournalEntry  `json:"journals"`
}
