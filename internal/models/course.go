package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentKind discriminates the two content item variants.
type ContentKind string

const (
	ContentKindFile    ContentKind = "file"
	ContentKindYouTube ContentKind = "youtube"
)

// FileRef holds the payload of an uploaded-file content item. Path is a
// locator relative to the upload root; Name is the original filename kept
// for display and download headers only.
type FileRef struct {
	Name string `bson:"name" json:"name"`
	Path string `bson:"path" json:"path"`
}

// YouTubeRef holds the payload of an embedded video content item. URL may be
// a full link or a bare 11-character video id; it is normalised on read.
type YouTubeRef struct {
	URL string `bson:"url" json:"url"`
}

// ContentItem is a closed tagged variant: exactly one of File or YouTube is
// set, matching Kind. ContentID is unique within a course and never reused.
type ContentItem struct {
	ContentID  string      `bson:"content_id" json:"content_id"`
	Kind       ContentKind `bson:"kind" json:"kind"`
	File       *FileRef    `bson:"file,omitempty" json:"file,omitempty"`
	YouTube    *YouTubeRef `bson:"youtube,omitempty" json:"youtube,omitempty"`
	UploadedAt time.Time   `bson:"uploaded_at" json:"uploaded_at"`
}

// NewFileItem builds the file variant.
func NewFileItem(contentID, name, path string, uploadedAt time.Time) ContentItem {
	return ContentItem{
		ContentID:  contentID,
		Kind:       ContentKindFile,
		File:       &FileRef{Name: name, Path: path},
		UploadedAt: uploadedAt,
	}
}

// NewYouTubeItem builds the embedded video variant.
func NewYouTubeItem(contentID, url string, uploadedAt time.Time) ContentItem {
	return ContentItem{
		ContentID:  contentID,
		Kind:       ContentKindYouTube,
		YouTube:    &YouTubeRef{URL: url},
		UploadedAt: uploadedAt,
	}
}

// IsFile reports whether the item is the uploaded-file variant.
func (c ContentItem) IsFile() bool {
	return c.Kind == ContentKindFile && c.File != nil
}

// Course is a catalog entry. CourseContent is append-only and its order is
// significant: it fixes the completion denominator and the display order.
type Course struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	CourseContent []ContentItem      `bson:"course_content,omitempty" json:"course_content"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// FindContentItem scans course content by id; first match wins.
func (c *Course) FindContentItem(contentID string) (ContentItem, bool) {
	for _, item := range c.CourseContent {
		if item.ContentID == contentID {
			return item, true
		}
	}
	return ContentItem{}, false
}

// ContentIDs returns the current content ids in order.
func (c *Course) ContentIDs() []string {
	ids := make([]string, 0, len(c.CourseContent))
	for _, item := range c.CourseContent {
		ids = append(ids, item.ContentID)
	}
	return ids
}
