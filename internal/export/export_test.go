package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/state"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{R: uint8(x), G: uint8(y), A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPNGIsLossless(t *testing.T) {
	img := checker(17, 9)
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, img))

	got, err := png.Decode(&buf)
	require.NoError(t, err)
	for y := 0; y < 9; y++ {
		for x := 0; x < 17; x++ {
			assert.Equal(t, img.NRGBAAt(x, y), color.NRGBAModel.Convert(got.At(x, y)))
		}
	}
}

func TestBase64RoundTrip(t *testing.T) {
	img := checker(6, 4)
	s, err := Base64PNG(img)
	require.NoError(t, err)

	for _, in := range []string{s, "data:image/png;base64," + s} {
		got, err := DecodeBase64PNG(in)
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), got.Bounds())
		assert.Equal(t, img.NRGBAAt(2, 2), color.NRGBAModel.Convert(got.At(2, 2)))
	}

	_, err = DecodeBase64PNG("not base64!")
	assert.Error(t, err)
	_, err = DecodeBase64PNG("aGVsbG8=")
	assert.Error(t, err, "valid base64 but not a png")
}

func TestPDF(t *testing.T) {
	for _, tt := range []struct {
		name  string
		img   image.Image
		title string
	}{
		{"portrait", checker(40, 80), "Sketch"},
		{"landscape", checker(80, 40), ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, PDF(&buf, tt.img, tt.title))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
			assert.Contains(t, buf.String(), "/Subtype /Image")
		})
	}

	var buf bytes.Buffer
	assert.Error(t, PDF(&buf, image.NewNRGBA(image.Rect(0, 0, 0, 0)), ""))
}

func TestSaveAndListItems(t *testing.T) {
	dir := t.TempDir()

	first := NewItem("", "a cat", "watercolor")
	assert.Equal(t, "Untitled", first.Title)
	first, err := SaveItem(dir, first, checker(4, 4), nil)
	require.NoError(t, err)
	assert.Equal(t, originalFile, first.Original)
	assert.Empty(t, first.Enhanced)

	second := NewItem("House", "", "")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	second.Description = "a red house"
	second, err = SaveItem(dir, second, checker(4, 4), checker(8, 8))
	require.NoError(t, err)
	assert.Equal(t, enhancedFile, second.Enhanced)
	assert.FileExists(t, filepath.Join(dir, second.ID, enhancedFile))
	assert.FileExists(t, filepath.Join(dir, second.ID, originalFile))

	require.NoError(t, os.Mkdir(filepath.Join(dir, "junk"), 0o755))

	items, err := ListItems(dir)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, "a red house", items[0].Description)
	assert.Equal(t, "a cat", items[1].Prompt)
	assert.True(t, first.CreatedAt.Equal(items[1].CreatedAt))
}

func TestSaveItemErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := SaveItem(dir, NewItem("x", "", ""), nil, nil)
	assert.Error(t, err)

	_, err = SaveItem(dir, Item{ID: "../escape"}, checker(2, 2), nil)
	assert.Error(t, err)

	items, err := ListItems(filepath.Join(dir, "missing"))
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestDrawingRoundTrip(t *testing.T) {
	b := state.Brush{Color: color.NRGBA{R: 200, B: 40, A: 255}, Width: 4, Opacity: 0.5}
	paint := state.NewStroke(state.MarkPaint, state.Point{X: 1, Y: 2}, b)
	paint.Points = append(paint.Points, state.Point{X: 10.5, Y: 7.25})
	erase := state.NewStroke(state.MarkErase, state.Point{X: 3, Y: 3}, state.Brush{Width: 6, Opacity: 1})
	fill := state.NewStroke(state.MarkFill, state.Point{X: 5, Y: 5}, state.Brush{Color: color.NRGBA{G: 255, A: 255}, Opacity: 1})

	d := NewDrawing(image.Rect(0, 0, 64, 48), []state.Stroke{paint, erase, fill})
	var buf bytes.Buffer
	require.NoError(t, WriteDrawing(&buf, d))
	assert.Contains(t, buf.String(), `"marks"`)

	got, err := ReadDrawing(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, got.Width)
	assert.Equal(t, 48, got.Height)
	require.Len(t, got.Marks, 3)
	for i, m := range got.Marks {
		want := d.Marks[i]
		assert.Equal(t, want.ID, m.ID)
		assert.Equal(t, want.Kind, m.Kind)
		assert.Equal(t, want.Points, m.Points)
		assert.Equal(t, want.Brush(), m.Brush())
		assert.True(t, want.Time.Equal(m.Time))
	}
}

func TestReadDrawingRejectsBadMarks(t *testing.T) {
	for _, in := range []string{
		`not json`,
		`{"marks":[{"kind":0,"points":[],"width":2}]}`,
		`{"marks":[{"kind":0,"points":[{"X":1,"Y":1}],"width":-1}]}`,
		`{"marks":[{"kind":2,"points":[{"X":1,"Y":1},{"X":2,"Y":2}]}]}`,
		`{"marks":[{"kind":9,"points":[{"X":1,"Y":1}],"width":2}]}`,
	} {
		_, err := ReadDrawing(strings.NewReader(in))
		assert.Error(t, err, in)
	}

	d, err := ReadDrawing(strings.NewReader(`{"width":4,"height":4,"marks":[]}`))
	require.NoError(t, err)
	assert.Empty(t, d.Marks)
}
