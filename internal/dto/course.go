package dto

import "time"

// PublicContentItem is the learner-visible projection of a content item.
// Download/view URLs are derived at read time and never stored.
type PublicContentItem struct {
	ContentID   string    `json:"content_id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	ViewURL     string    `json:"view_url,omitempty"`
	URL         string    `json:"url,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// PublicCourse is a course projected for an enrolled learner.
type PublicCourse struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	CourseContent []PublicContentItem `json:"course_content"`
	CreatedAt     time.Time           `json:"created_at"`
}

// CourseSummary is a catalog entry with content stripped.
type CourseSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
