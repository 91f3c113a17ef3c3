package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SketchBoard/internal/export"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func serve(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil)
}

func TestEnhance(t *testing.T) {
	blue := color.NRGBA{B: 255, A: 255}
	var got requestBody
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		out, err := export.Base64PNG(solid(8, 8, blue))
		require.NoError(t, err)
		json.NewEncoder(w).Encode(responseBody{EnhancedImage: out, Description: "a blue square"})
	})

	res, err := c.Enhance(context.Background(), Request{
		Image:  solid(4, 4, color.NRGBA{R: 255, A: 255}),
		Style:  "watercolor",
		Prompt: "square",
	})
	require.NoError(t, err)
	assert.Equal(t, "a blue square", res.Description)
	assert.Equal(t, image.Rect(0, 0, 8, 8), res.Image.Bounds())
	assert.Equal(t, blue, color.NRGBAModel.Convert(res.Image.At(3, 3)))

	assert.Equal(t, "watercolor", got.Style)
	assert.Equal(t, "square", got.Prompt)
	sent, err := export.DecodeBase64PNG(got.Image)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), sent.Bounds())
}

func TestEnhanceErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		remote  bool
	}{
		{
			name: "service error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"no sketch found"}`))
			},
			remote: true,
		},
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			remote: true,
		},
		{
			name: "missing image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"description":"nothing"}`))
			},
		},
		{
			name: "garbage image",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"enhanced_image":"aGVsbG8="}`))
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serve(t, tt.handler)
			res, err := c.Enhance(context.Background(), Request{Image: solid(2, 2, color.NRGBA{A: 255})})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.remote, errors.Is(err, ErrRemote), err.Error())
		})
	}
}

func TestEnhanceHonorsContext(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Enhance(ctx, Request{Image: solid(2, 2, color.NRGBA{A: 255})})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
