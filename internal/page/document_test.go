package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
	<title> Sample Page </title>
	<link rel="stylesheet" href="/css/main.css">
	<link rel="alternate stylesheet" href="alt.css">
	<link rel="icon" href="/favicon.ico">
	<link rel="stylesheet">
	<style>body { color: red; }</style>
	<style></style>
	<script src="https://cdn.example.com/lib.js"></script>
	<script>var x = 1;</script>
	<script src=""></script>
</head>
<body>
	<h1>Hello</h1>
	<p>World <b>bold</b></p>
	<img src="/a.png"><img alt="no src"><img src="">
	<video src="/v.mp4"></video><video src=""></video>
	<iframe src="https://www.youtube.com/embed/xyz"></iframe>
	<iframe src="https://ads.example.com/frame"></iframe>
	<audio src="/a.mp3"></audio>
	<video><source src="/s.webm"><source src="/s.webm"></video>
	<a href="/one">One</a><a href="#top">Top</a><a>No href</a>
	<script>console.log("tail");</script>
</body>
</html>`

func TestDocument_Scripts(t *testing.T) {
	d := Parse(sampleHTML)
	assert.Equal(t, []string{"var x = 1;", `console.log("tail");`}, d.InlineScripts())
	assert.Equal(t, []string{"https://cdn.example.com/lib.js"}, d.ScriptSources())
}

func TestDocument_Styles(t *testing.T) {
	d := Parse(sampleHTML)
	assert.Equal(t, []string{"body { color: red; }"}, d.InlineStyles())
	assert.Equal(t, []string{"/css/main.css", "alt.css"}, d.StylesheetHrefs())
}

func TestDocument_Media(t *testing.T) {
	d := Parse(sampleHTML)
	assert.Equal(t, []string{"/a.png", ""}, d.ImageSources())
	assert.Equal(t, []string{"/v.mp4"}, d.VideoSources())
	assert.Equal(t, []string{"https://www.youtube.com/embed/xyz"}, d.EmbeddedVideoSources())
	assert.Equal(t, []string{"/a.mp3"}, d.AudioSources())
	assert.Equal(t, []string{"/s.webm", "/s.webm"}, d.MediaSources())
}

func TestDocument_Anchors(t *testing.T) {
	d := Parse(sampleHTML)
	assert.Equal(t, []string{"/one", "#top"}, d.AnchorHrefs())
}

func TestDocument_TitleAndText(t *testing.T) {
	d := Parse(sampleHTML)
	assert.Equal(t, "Sample Page", d.Title())

	text := d.Text()
	assert.Equal(t, "Sample Page Hello World bold One Top No href", text)
	assert.NotContains(t, text, "var x")
	assert.NotContains(t, text, "color: red")
}

func TestDocument_TextDoesNotMutate(t *testing.T) {
	d := Parse(sampleHTML)
	_ = d.Text()
	assert.Len(t, d.FindAll("script"), 4)
	assert.Len(t, d.FindAll("style"), 2)
}

func TestDocument_NoscriptParsedAsElements(t *testing.T) {
	d := Parse(`<p>Hi</p><noscript><img src="/lazy.png"><a href="/nojs">plain</a><p>Enable JS</p></noscript><img src="/a.png">`)

	assert.Equal(t, []string{"/lazy.png", "/a.png"}, d.ImageSources())
	assert.Equal(t, []string{"/nojs"}, d.AnchorHrefs())

	text := d.Text()
	assert.Equal(t, "Hi plain Enable JS", text)
	assert.NotContains(t, text, "<img")
}

func TestParse_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"<<<>>>",
		"<div><p>unclosed <b>tags",
		"<html><body><a href='/x'>x</body>",
		"\x00\xff binary junk",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			d := Parse(in)
			_ = d.Text()
			_ = d.AnchorHrefs()
		}, "input %q", in)
	}

	d := Parse("<div><p>unclosed <b>tags")
	assert.Equal(t, "unclosed tags", d.Text())
}

func TestFindAllWith(t *testing.T) {
	d := Parse(`<a href="x">1</a><a href="">2</a><a>3</a>`)

	assert.Len(t, d.FindAllWith("a", "href", nil), 2)
	assert.Len(t, d.FindAllWith("a", "href", nonEmpty), 1)

	els := d.FindAll("a")
	assert.Len(t, els, 3)
	_, ok := els[2].Attr("href")
	assert.False(t, ok)
	assert.Equal(t, "3", els[2].Text())
}
