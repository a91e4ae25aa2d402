package catalog

import "github.com/MKhiriev/go-writeups/models"

const (
	emptyCatalogMessage  = "Add some writeups to get started."
	emptyFilteredMessage = "Try adjusting your filters."
)

// Stats are the counters shown in the catalog footer.
type Stats struct {
	Total      int
	Completed  int
	InProgress int
}

// Summarize counts list by status. Locked writeups count towards Total only.
func Summarize(list []models.Writeup) Stats {
	s := Stats{Total: len(list)}
	for _, w := range list {
		switch w.Status {
		case models.StatusCompleted:
			s.Completed++
		case models.StatusActive:
			s.InProgress++
		}
	}
	return s
}

// EmptyStateMessage returns the hint shown when a filtered catalog is empty.
// total is the size of the unfiltered list.
func EmptyStateMessage(total int) string {
	if total == 0 {
		return emptyCatalogMessage
	}
	return emptyFilteredMessage
}
