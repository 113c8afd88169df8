package domain

import "time"

// TrainingVideo is a training video hosted on an external platform
type TrainingVideo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	Platform    string    `json:"platform"` // e.g. youtube, vimeo, internal
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrainingPresentation is an uploaded training slide deck or document
type TrainingPresentation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	MimeType    string    `json:"mime_type"`
	FileName    string    `json:"file_name"`
	CreatedAt   time.Time `json:"created_at"`
}
