package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alanbriolat/video-filer"
	"github.com/alanbriolat/video-filer/internal/httpx"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"
	handlePrefix   = "@"
)

// Client resolves youtube videos with two dependent Data API requests: the video, then its channel.
type Client struct {
	Config  Config
	BaseURL string
	// NewHTTPClient builds the proxied client once the Config has been validated.
	NewHTTPClient func(proxy *url.URL) (*http.Client, error)
}

func NewClient(config Config) *Client {
	return &Client{
		Config:        config,
		BaseURL:       DefaultBaseURL,
		NewHTTPClient: httpx.NewProxyClient,
	}
}

func (c *Client) Resolve(ctx context.Context, ref video_filer.VideoReference) (*video_filer.VideoMetadata, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}
	fail := func(stage string, err error) error {
		return &video_filer.ResolutionError{Platform: video_filer.PlatformYouTube, VideoID: ref.NativeID, Stage: stage, Err: err}
	}
	if ref.Platform != video_filer.PlatformYouTube {
		return nil, fail("", fmt.Errorf("unexpected platform %v", ref.Platform))
	}
	proxy, err := httpx.ProxyURL(c.Config.ProxyHost, c.Config.ProxyPort)
	if err != nil {
		return nil, &video_filer.ConfigurationError{Platform: video_filer.PlatformYouTube, Missing: []string{"valid proxy (" + err.Error() + ")"}}
	}
	client, err := c.NewHTTPClient(proxy)
	if err != nil {
		return nil, fail("", err)
	}

	video, err := c.fetchVideo(ctx, client, ref.NativeID)
	if err != nil {
		return nil, fail("video", err)
	}
	handle, err := c.fetchChannelHandle(ctx, client, video)
	if err != nil {
		return nil, fail("channel", err)
	}
	meta := &video_filer.VideoMetadata{
		Platform:     video_filer.PlatformYouTube,
		ID:           video.id,
		Title:        video.title,
		PublishTime:  video.publishedAt,
		UploaderID:   handle,
		UploaderName: video.channelTitle,
	}
	if err := meta.Validate(); err != nil {
		return nil, fail("", err)
	}
	return meta, nil
}

// videoRecord is a fully validated result of the video lookup; only this feeds the channel lookup.
type videoRecord struct {
	id           string
	channelID    string
	title        string
	publishedAt  time.Time
	channelTitle string
}

func (c *Client) fetchVideo(ctx context.Context, client *http.Client, id string) (*videoRecord, error) {
	var resp videoListResponse
	query := url.Values{"id": {id}, "key": {c.Config.APIKey}, "part": {"snippet"}}
	if err := httpx.GetJSON(ctx, client, c.endpoint("videos"), query, &resp); err != nil {
		return nil, err
	}
	return resp.record()
}

func (c *Client) fetchChannelHandle(ctx context.Context, client *http.Client, video *videoRecord) (string, error) {
	var resp channelListResponse
	query := url.Values{"id": {video.channelID}, "key": {c.Config.APIKey}, "part": {"snippet"}}
	if err := httpx.GetJSON(ctx, client, c.endpoint("channels"), query, &resp); err != nil {
		return "", err
	}
	return resp.handle()
}

func (c *Client) endpoint(resource string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + resource
}
