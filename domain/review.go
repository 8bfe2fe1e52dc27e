package domain

// DailyReview is a per-day reflection entry. At most one exists per calendar
// day; saving a review for an existing day replaces it.
type DailyReview struct {
	Date     string `json:"date"`
	Rating   int    `json:"rating"`
	Mood     string `json:"mood,omitempty"`
	Wins     string `json:"wins,omitempty"`
	Grateful string `json:"grateful,omitempty"`
	Improve  string `json:"improve,omitempty"`
	Energy   int    `json:"energy"`
}

// UpsertReview inserts the review, replacing any existing entry for its date.
func (d *UserData) UpsertReview(r DailyReview) {
	for i := range d.DailyReviews {
		if d.DailyReviews[i].Date == r.Date {
			d.DailyReviews[i] = r
			return
		}
	}
	d.DailyReviews = append(d.DailyReviews, r)
}
