package domain

import "time"

// ProcessingStats accumulates counters for one run. The enhancement engine
// is the only writer; after the run it is read-only.
type ProcessingStats struct {
	TotalMessages   int           `json:"total_messages"`
	MediaMessages   int           `json:"media_messages"`
	ResolvedMedia   int           `json:"resolved_media"`
	ProcessedMedia  int           `json:"processed_media"`
	FailedMedia     int           `json:"failed_media"`
	SkippedVideos   int           `json:"skipped_videos"`
	ImagesProcessed int           `json:"images_processed"`
	AudioProcessed  int           `json:"audio_processed"`
	ProcessingTime  time.Duration `json:"processing_time_ns"`
	Errors          []string      `json:"errors"`
}

// SuccessRate is the processed share of all media messages, in percent.
func (s *ProcessingStats) SuccessRate() float64 {
	if s.MediaMessages == 0 {
		return 0
	}
	return float64(s.ProcessedMedia) / float64(s.MediaMessages) * 100
}

func (s *ProcessingStats) AddError(msg string) {
	s.Errors = append(s.Errors, msg)
}

// FirstErrors returns at most n error summaries, keeping output readable
// when a run fails broadly.
func (s *ProcessingStats) FirstErrors(n int) []string {
	if len(s.Errors) <= n {
		return s.Errors
	}
	return s.Errors[:n]
}
