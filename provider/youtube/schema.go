package youtube

import (
	"fmt"
	"strings"
	"time"

	"github.com/alanbriolat/video-filer"
)

// videoListResponse mirrors the parts of a videos.list (part=snippet) response we use.
type videoListResponse struct {
	Items []struct {
		ID      *string `json:"id"`
		Snippet *struct {
			ChannelID    *string `json:"channelId"`
			Title        *string `json:"title"`
			PublishedAt  *string `json:"publishedAt"`
			ChannelTitle *string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

func (r *videoListResponse) record() (*videoRecord, error) {
	if len(r.Items) == 0 {
		return nil, &video_filer.MissingFieldError{Field: "items[0]"}
	}
	item := r.Items[0]
	if item.Snippet == nil {
		return nil, &video_filer.MissingFieldError{Field: "items[0].snippet"}
	}
	s := item.Snippet
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"items[0].id", item.ID},
		{"items[0].snippet.channelId", s.ChannelID},
		{"items[0].snippet.title", s.Title},
		{"items[0].snippet.publishedAt", s.PublishedAt},
		{"items[0].snippet.channelTitle", s.ChannelTitle},
	} {
		if f.value == nil || *f.value == "" {
			return nil, &video_filer.MissingFieldError{Field: f.name}
		}
	}
	publishedAt, err := time.Parse(time.RFC3339, *s.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid publishedAt %q: %w", *s.PublishedAt, err)
	}
	return &videoRecord{
		id:           *item.ID,
		channelID:    *s.ChannelID,
		title:        *s.Title,
		publishedAt:  publishedAt,
		channelTitle: *s.ChannelTitle,
	}, nil
}

// channelListResponse mirrors the parts of a channels.list (part=snippet) response we use.
type channelListResponse struct {
	Items []struct {
		Snippet *struct {
			CustomURL *string `json:"customUrl"`
		} `json:"snippet"`
	} `json:"items"`
}

func (r *channelListResponse) handle() (string, error) {
	if len(r.Items) == 0 {
		return "", &video_filer.MissingFieldError{Field: "items[0]"}
	}
	s := r.Items[0].Snippet
	if s == nil || s.CustomURL == nil {
		return "", &video_filer.MissingFieldError{Field: "items[0].snippet.customUrl"}
	}
	handle := strings.TrimPrefix(*s.CustomURL, handlePrefix)
	if handle == "" {
		return "", &video_filer.MissingFieldError{Field: "items[0].snippet.customUrl"}
	}
	return handle, nil
}
