package congress

// Deadline is one dated milestone. Date is stored verbatim as entered
// ("YYYY-MM-DD" or "DD/MM/YYYY"); Time is an optional "HH:MM".
type Deadline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"`
	Time string `json:"time,omitempty"`
}

type EditalDates struct {
	OpeningDate           string     `json:"openingDate"`
	SubmissionDeadlines   []Deadline `json:"submissionDeadlines"`
	PresentationDeadlines []Deadline `json:"presentationDeadlines"`
	ResultsDeadlines      []Deadline `json:"resultsDeadlines"`
	PublicationDate       string     `json:"publicationDate"`
}
