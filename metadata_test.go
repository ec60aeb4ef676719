package video_filer

import (
	"testing"
	"time"

	assert_ "github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	assert := assert_.New(t)

	assert.Equal("TestTitle", SanitizeName("Test/Title"))
	assert.Equal("", SanitizeName(`/\:?<>*"`))
	assert.Equal("a|b 【中文】 c.d", SanitizeName(`a|b 【中文】 c.d`))
	assert.Equal("abcdefghi", SanitizeName(`a/b\c:d?e<f>g*h"i`))

	for _, s := range []string{"", "plain", "Test/Title", `<<a>>::"b"**`, "日本語/タイトル?"} {
		once := SanitizeName(s)
		assert.Equal(once, SanitizeName(once), s)
		assert.NotContains(once, "/")
		assert.NotContains(once, `\`)
		assert.NotContains(once, `"`)
	}
}

func TestFormatTime(t *testing.T) {
	assert := assert_.New(t)
	saved := time.Local
	t.Cleanup(func() { time.Local = saved })

	time.Local = time.UTC
	assert.Equal("2023-11-14 22:13:20", FormatTime(time.Unix(1700000000, 0)))
	assert.Equal("1970-01-01 00:00:00", FormatTime(time.Unix(0, 0)))

	time.Local = time.FixedZone("CST", 8*60*60)
	assert.Equal("2023-11-15 06:13:20", FormatTime(time.Unix(1700000000, 0)))
	assert.Equal(FormatTime(time.Unix(1700000000, 0)), FormatTime(time.Unix(1700000000, 0).UTC()))
}

func TestValidate(t *testing.T) {
	assert := assert_.New(t)
	full := VideoMetadata{
		Platform:     PlatformBilibili,
		ID:           "1GJ411x7h7",
		Title:        "t",
		PublishTime:  time.Unix(1700000000, 0),
		UploaderID:   "42",
		UploaderName: "Alice",
	}
	assert.NoError(full.Validate())

	var nilMeta *VideoMetadata
	assert.Error(nilMeta.Validate())

	for field, mutate := range map[string]func(m *VideoMetadata){
		"platform":     func(m *VideoMetadata) { m.Platform = PlatformUnknown },
		"id":           func(m *VideoMetadata) { m.ID = "" },
		"title":        func(m *VideoMetadata) { m.Title = "" },
		"publishTime":  func(m *VideoMetadata) { m.PublishTime = time.Time{} },
		"uploaderId":   func(m *VideoMetadata) { m.UploaderID = "" },
		"uploaderName": func(m *VideoMetadata) { m.UploaderName = "" },
	} {
		m := full
		mutate(&m)
		err := m.Validate()
		var mf *MissingFieldError
		if assert.ErrorAs(err, &mf, field) {
			assert.Equal(field, mf.Field)
		}
	}
}

func TestPlatform(t *testing.T) {
	assert := assert_.New(t)
	assert.Equal("bilibili.com", PlatformBilibili.Domain())
	assert.Equal("youtube.com", PlatformYouTube.Domain())
	assert.Equal("", PlatformUnknown.Domain())
	assert.Equal("youtube:dQw4w9WgXcQ", VideoReference{Platform: PlatformYouTube, NativeID: "dQw4w9WgXcQ"}.String())
}
