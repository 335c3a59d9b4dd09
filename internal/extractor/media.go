package extractor

import (
	"fmt"

	"github.com/byteowlz/pagesift/internal/page"
	"github.com/byteowlz/pagesift/internal/report"
)

// MediaLinks holds absolute media URLs in document order. Only OtherMedia
// is de-duplicated; the other categories keep repeats.
type MediaLinks struct {
	Images     []string
	Videos     []string
	Audio      []string
	OtherMedia []string
}

func (m MediaLinks) Empty() bool {
	return len(m.Images) == 0 && len(m.Videos) == 0 && len(m.Audio) == 0 && len(m.OtherMedia) == 0
}

// CollectMedia gathers media URLs from a loaded page.
func CollectMedia(p *page.Page) MediaLinks {
	var m MediaLinks
	doc := p.Document()
	if doc == nil {
		return m
	}

	for _, src := range doc.ImageSources() {
		m.Images = append(m.Images, p.Resolve(src))
	}
	for _, src := range doc.VideoSources() {
		m.Videos = append(m.Videos, p.Resolve(src))
	}
	for _, src := range doc.EmbeddedVideoSources() {
		m.Videos = append(m.Videos, p.Resolve(src))
	}
	for _, src := range doc.AudioSources() {
		m.Audio = append(m.Audio, p.Resolve(src))
	}

	seen := make(map[string]bool)
	for _, src := range doc.MediaSources() {
		abs := p.Resolve(src)
		if !seen[abs] {
			seen[abs] = true
			m.OtherMedia = append(m.OtherMedia, abs)
		}
	}

	return m
}

// Media reports images, videos, audio and other media, omitting empty
// categories.
func Media(p *page.Page) report.Result {
	if !p.Loaded() {
		return report.NoContent(TitleMedia)
	}

	m := CollectMedia(p)
	if m.Empty() {
		return report.Empty(TitleMedia, "No media links found on the page.")
	}

	categories := []struct {
		name string
		urls []string
	}{
		{"Images", m.Images},
		{"Videos", m.Videos},
		{"Audio", m.Audio},
		{"Other_media", m.OtherMedia},
	}

	var sections []report.Section
	for _, c := range categories {
		if len(c.urls) == 0 {
			continue
		}
		sections = append(sections, linkSection(fmt.Sprintf("%s (%d found)", c.name, len(c.urls)), c.urls))
	}
	return report.OK(TitleMedia, sections...)
}
