package uploads

import "time"

// Resume records one uploaded resume and the skills found in it.
type Resume struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	FileName       string    `json:"fileName"`
	MimeType       string    `json:"mimeType"`
	SizeBytes      int64     `json:"sizeBytes"`
	StorageKey     string    `json:"-"`
	DetectedSkills []string  `json:"detectedSkills"`
	CreatedAt      time.Time `json:"createdAt"`
}
