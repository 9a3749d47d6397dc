package domain

import (
	"fmt"
	"path/filepath"
	"time"
)

// Media is the item being played.
type Media struct {
	Key      string  // Stable identity used for resume records
	Path     string  // File path or URL; empty for the simulated backend
	Title    string  // Display title
	Duration float64 // Seconds if known up front, NaN otherwise
}

// DisplayTitle returns the title, falling back to the file name.
func (m Media) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Path != "" {
		return filepath.Base(m.Path)
	}
	return m.Key
}

// ResumeRecord is the stored playback position for a media item.
type ResumeRecord struct {
	MediaKey  string  `json:"mediaKey"`
	Path      string  `json:"path,omitempty"`
	Title     string  `json:"title,omitempty"`
	Position  float64 `json:"position"`
	Duration  float64 `json:"duration"`
	UpdatedAt int64   `json:"updatedAt"`
}

// Offset returns the position as a duration for player start flags.
func (r ResumeRecord) Offset() time.Duration {
	return time.Duration(r.Position * float64(time.Second))
}

// PercentComplete returns the stored progress in [0,1].
func (r ResumeRecord) PercentComplete() float64 {
	return PlaybackState{CurrentTime: r.Position, Duration: r.Duration}.Percent()
}

func (r ResumeRecord) String() string {
	return fmt.Sprintf("%s @ %.1fs/%.1fs", r.MediaKey, r.Position, r.Duration)
}

// ResumeStore persists resume positions.
type ResumeStore interface {
	Get(mediaKey string) (ResumeRecord, bool)
	Save(record ResumeRecord) error
	Delete(mediaKey string) error
	List() ([]ResumeRecord, error)
	Close() error
}
