package video_filer_test

import (
	"errors"
	"strings"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbriolat/video-filer"
	_ "github.com/alanbriolat/video-filer/providers"
)

func prefixMatcher(platform video_filer.Platform, prefix string) video_filer.MatchFunc {
	return func(s string) (*video_filer.VideoReference, error) {
		if !strings.HasPrefix(s, prefix) {
			return nil, errors.New("wrong prefix")
		}
		return &video_filer.VideoReference{Platform: platform, NativeID: strings.TrimPrefix(s, prefix)}, nil
	}
}

func testProvider(name string, platform video_filer.Platform, prefix string) video_filer.Provider {
	return video_filer.Provider{Name: name, Platform: platform, Match: prefixMatcher(platform, prefix)}
}

func TestRegistryAdd(t *testing.T) {
	assert := assert_.New(t)
	var r video_filer.ProviderRegistry

	assert.ErrorIs(r.Add(video_filer.Provider{Name: "x", Platform: video_filer.PlatformBilibili}), video_filer.ErrInvalidProvider)
	assert.ErrorIs(r.Add(testProvider("", video_filer.PlatformBilibili, "a")), video_filer.ErrInvalidProvider)
	assert.ErrorIs(r.Add(video_filer.Provider{Name: "x", Match: prefixMatcher(video_filer.PlatformBilibili, "a")}), video_filer.ErrInvalidProvider)
	assert.NoError(r.Add(testProvider("a", video_filer.PlatformBilibili, "a")))
	assert.ErrorIs(r.Add(testProvider("a", video_filer.PlatformBilibili, "a")), video_filer.ErrDuplicateProvider)
	assert.Panics(func() { r.MustAdd(testProvider("a", video_filer.PlatformBilibili, "a")) })

	_, err := r.GetPriority("missing")
	assert.ErrorIs(err, video_filer.ErrUnknownProvider)
}

func TestRegistryPriorityOrder(t *testing.T) {
	assert := assert_.New(t)
	var r video_filer.ProviderRegistry
	r.MustAdd(testProvider("late", video_filer.PlatformYouTube, "x"))
	r.MustAdd(testProvider("early", video_filer.PlatformBilibili, "x").WithPriority(-1))
	r.MustAdd(testProvider("also-late", video_filer.PlatformYouTube, "y"))
	assert.Equal([]string{"early", "late", "also-late"}, r.List())

	m, err := r.Match("x123")
	require.NoError(t, err)
	assert.Equal("early", m.ProviderName)
	assert.Equal(video_filer.PlatformBilibili, m.Reference.Platform)
	assert.Equal("123", m.Reference.NativeID)

	assert.NoError(r.SetPriority("late", -2))
	m, err = r.Match("x123")
	require.NoError(t, err)
	assert.Equal("late", m.ProviderName)
	assert.ErrorIs(r.SetPriority("missing", 0), video_filer.ErrUnknownProvider)
}

func TestRegistryNoMatch(t *testing.T) {
	assert := assert_.New(t)
	var r video_filer.ProviderRegistry
	r.MustAdd(testProvider("a", video_filer.PlatformBilibili, "a"))
	r.MustAdd(testProvider("b", video_filer.PlatformYouTube, "b"))

	m, err := r.Match("zzz")
	assert.Nil(m)
	assert.ErrorIs(err, video_filer.ErrNotRecognized)
	assert.Contains(err.Error(), "[a]")
	assert.Contains(err.Error(), "[b]")

	m, err = r.MatchWith("b", "b1")
	require.NoError(t, err)
	assert.Equal("1", m.Reference.NativeID)
	_, err = r.MatchWith("b", "a1")
	assert.ErrorIs(err, video_filer.ErrNotRecognized)
	_, err = r.MatchWith("c", "c1")
	assert.ErrorIs(err, video_filer.ErrUnknownProvider)
}

func TestRegistryPlatformMismatch(t *testing.T) {
	assert := assert_.New(t)
	var r video_filer.ProviderRegistry
	// Claims to be a bilibili provider but hands out youtube references.
	r.MustAdd(video_filer.Provider{Name: "liar", Platform: video_filer.PlatformBilibili, Match: prefixMatcher(video_filer.PlatformYouTube, "x")}.WithPriority(-1))
	r.MustAdd(testProvider("honest", video_filer.PlatformYouTube, "x"))

	m, err := r.Match("x123")
	require.NoError(t, err)
	assert.Equal("honest", m.ProviderName)

	_, err = r.MatchWith("liar", "x123")
	assert.ErrorIs(err, video_filer.ErrNotRecognized)
	assert.Contains(err.Error(), video_filer.ErrPlatformMismatch.Error())
}

func TestDefaultRegistry(t *testing.T) {
	assert := assert_.New(t)
	r := &video_filer.DefaultProviderRegistry
	assert.Equal([]string{"bilibili", "youtube"}, r.List())

	m, err := r.Match("https://www.bilibili.com/video/BV1GJ411x7h7")
	require.NoError(t, err)
	assert.Equal(video_filer.VideoReference{Platform: video_filer.PlatformBilibili, NativeID: "BV1GJ411x7h7"}, m.Reference)

	m, err = r.Match("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(video_filer.VideoReference{Platform: video_filer.PlatformYouTube, NativeID: "dQw4w9WgXcQ"}, m.Reference)

	for _, s := range []string{
		"",
		"https://vimeo.com/76979871",
		"https://www.bilibili.com/",
		"not a url",
		"https://example.com/redirect?to=https://www.bilibili.com/video/BV1GJ411x7h7",
		"xxhttps://www.youtube.com/watch?v=dQw4w9WgXcQ",
	} {
		m, err := r.Match(s)
		assert.Nil(m, s)
		assert.ErrorIs(err, video_filer.ErrNotRecognized, s)
	}
}
