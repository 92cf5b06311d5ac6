package chart

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/healthtracker/internal/storage"
)

func decodePNG(t *testing.T, uri string) (int, int) {
	t.Helper()
	require.True(t, strings.HasPrefix(uri, DataURIPrefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, DataURIPrefix))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestRender(t *testing.T) {
	r := NewRenderer(640, 320)

	uri, err := r.Render("Weight (kg)", []storage.Point{
		{Date: "2025-05-15", Value: 70},
		{Date: "2025-05-16", Value: 71},
		{Date: "2025-05-17", Value: 70},
	})
	require.NoError(t, err)

	w, h := decodePNG(t, uri)
	assert.Equal(t, 640, w)
	assert.Equal(t, 320, h)
}

func TestRenderFlatSeries(t *testing.T) {
	uri, err := NewRenderer(400, 200).Render("Pulse (bpm)", []storage.Point{
		{Date: "2025-05-15", Value: 60},
		{Date: "2025-05-16", Value: 60},
	})
	require.NoError(t, err)
	decodePNG(t, uri)
}

func TestRenderRejectsShortSeries(t *testing.T) {
	r := NewRenderer(400, 200)

	_, err := r.Render("Sleep", nil)
	assert.ErrorIs(t, err, ErrNotEnoughData)

	_, err = r.Render("Sleep", []storage.Point{{Date: "2025-05-15", Value: 8}})
	assert.ErrorIs(t, err, ErrNotEnoughData)

	_, err = r.Render("Sleep", []storage.Point{
		{Date: "2025-05-15", Value: 8},
		{Date: "2025-05-15", Value: 6},
	})
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestRenderRejectsBadDate(t *testing.T) {
	_, err := NewRenderer(400, 200).Render("Sleep", []storage.Point{
		{Date: "2025-05-15", Value: 8},
		{Date: "someday", Value: 7},
	})
	assert.Error(t, err)
}
