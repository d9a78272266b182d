package job

import (
	"encoding/json"
	"os"
	"time"
)

// Shortlist is the saved set of postings worth acting on, persisted as a
// JSON file between runs.
type Shortlist struct {
	Items []*ShortlistEntry
}

type ShortlistEntry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title,omitempty"`
	Company  string    `json:"company,omitempty"`
	Location string    `json:"location,omitempty"`
	URL      string    `json:"url,omitempty"`
	FitScore float64   `json:"fit_score"`
	SavedAt  time.Time `json:"saved_at"`
}

// ShortlistFromFile loads a shortlist, returning an empty one when the
// file does not exist yet.
func ShortlistFromFile(path string) (*Shortlist, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return &Shortlist{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &Shortlist{}, nil
	}

	var shortlist Shortlist
	if err := json.NewDecoder(file).Decode(&shortlist); err != nil {
		return nil, err
	}
	return &shortlist, nil
}

// Add appends a posting unless it is already shortlisted.
func (s *Shortlist) Add(posting *Posting, fitScore float64) bool {
	for _, entry := range s.Items {
		if entry.ID == posting.ID {
			return false
		}
	}
	s.Items = append(s.Items, &ShortlistEntry{
		ID:       posting.ID,
		Title:    posting.Title,
		Company:  posting.Company,
		Location: posting.Location,
		URL:      posting.URL,
		FitScore: fitScore,
		SavedAt:  time.Now().UTC(),
	})
	return true
}

func (s *Shortlist) Len() int {
	return len(s.Items)
}

// IDs returns the shortlisted posting ids.
func (s *Shortlist) IDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, entry := range s.Items {
		ids = append(ids, entry.ID)
	}
	return ids
}

func (s *Shortlist) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
