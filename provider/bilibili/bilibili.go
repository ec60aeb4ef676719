// Package bilibili recognises www.bilibili.com video URLs and resolves their metadata through the public
// web-interface API.
package bilibili

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alanbriolat/video-filer"
	"github.com/alanbriolat/video-filer/internal/httpx"
)

const (
	Name           = "bilibili"
	DefaultBaseURL = "https://api.bilibili.com"
	viewPath       = "/x/web-interface/view"
	idPrefix       = "BV"
)

var urlPattern = regexp.MustCompile(`^https://www\.bilibili\.com/video/(BV[a-zA-Z0-9]{10})`)

// Match extracts the BV id from a bilibili video URL.
func Match(s string) (*video_filer.VideoReference, error) {
	m := urlPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("not a bilibili video URL")
	}
	return &video_filer.VideoReference{Platform: video_filer.PlatformBilibili, NativeID: m[1]}, nil
}

func New() video_filer.Provider {
	return video_filer.Provider{
		Name:     Name,
		Platform: video_filer.PlatformBilibili,
		Match:    Match,
		Priority: video_filer.PriorityHighest,
	}
}

// Client resolves bilibili videos with a single request.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = httpx.NewClient()
	}
	return &Client{BaseURL: DefaultBaseURL, HTTP: httpClient}
}

func (c *Client) Resolve(ctx context.Context, ref video_filer.VideoReference) (*video_filer.VideoMetadata, error) {
	fail := func(err error) error {
		return &video_filer.ResolutionError{Platform: video_filer.PlatformBilibili, VideoID: ref.NativeID, Stage: "video", Err: err}
	}
	if ref.Platform != video_filer.PlatformBilibili {
		return nil, fail(fmt.Errorf("unexpected platform %v", ref.Platform))
	}
	if !strings.HasPrefix(ref.NativeID, idPrefix) {
		return nil, fail(fmt.Errorf("malformed id %q", ref.NativeID))
	}

	var resp viewResponse
	query := url.Values{"bvid": {strings.TrimPrefix(ref.NativeID, idPrefix)}}
	if err := httpx.GetJSON(ctx, c.HTTP, strings.TrimRight(c.BaseURL, "/")+viewPath, query, &resp); err != nil {
		return nil, fail(err)
	}
	meta, err := resp.metadata()
	if err != nil {
		return nil, fail(err)
	}
	return meta, nil
}

// viewResponse mirrors the parts of /x/web-interface/view we use. Pointers distinguish absent from zero.
type viewResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    *struct {
		Bvid    *string `json:"bvid"`
		Pubdate *int64  `json:"pubdate"`
		Title   *string `json:"title"`
		Owner   *struct {
			Mid  *int64  `json:"mid"`
			Name *string `json:"name"`
		} `json:"owner"`
	} `json:"data"`
}

func (r *viewResponse) metadata() (*video_filer.VideoMetadata, error) {
	if r.Code != 0 {
		return nil, fmt.Errorf("API error %d: %s", r.Code, r.Message)
	}
	d := r.Data
	switch {
	case d == nil:
		return nil, &video_filer.MissingFieldError{Field: "data"}
	case d.Bvid == nil || len(*d.Bvid) <= len(idPrefix):
		return nil, &video_filer.MissingFieldError{Field: "data.bvid"}
	case d.Pubdate == nil:
		return nil, &video_filer.MissingFieldError{Field: "data.pubdate"}
	case d.Title == nil:
		return nil, &video_filer.MissingFieldError{Field: "data.title"}
	case d.Owner == nil || d.Owner.Mid == nil:
		return nil, &video_filer.MissingFieldError{Field: "data.owner.mid"}
	case d.Owner.Name == nil:
		return nil, &video_filer.MissingFieldError{Field: "data.owner.name"}
	}
	meta := &video_filer.VideoMetadata{
		Platform:     video_filer.PlatformBilibili,
		ID:           (*d.Bvid)[len(idPrefix):],
		Title:        *d.Title,
		PublishTime:  time.Unix(*d.Pubdate, 0),
		UploaderID:   strconv.FormatInt(*d.Owner.Mid, 10),
		UploaderName: *d.Owner.Name,
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return meta, nil
}

func init() {
	video_filer.DefaultProviderRegistry.MustAdd(New())
}
