package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	itemFile     = "item.json"
	originalFile = "original.png"
	enhancedFile = "enhanced.png"
)

// Item is a gallery entry: an exported drawing and its enhanced rendition.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Prompt      string    `json:"prompt,omitempty"`
	Theme       string    `json:"theme,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Original    string    `json:"originalImageRef"`
	Enhanced    string    `json:"enhancedImageRef,omitempty"`
	Description string    `json:"description,omitempty"`
}

func NewItem(title, prompt, theme string) Item {
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	return Item{
		ID:        uuid.NewString(),
		Title:     title,
		Prompt:    prompt,
		Theme:     theme,
		CreatedAt: time.Now().UTC(),
	}
}

// SaveItem writes dir/<id>/ with the original drawing, the enhanced image
// when there is one, and the item metadata. It returns the item as stored.
func SaveItem(dir string, it Item, original, enhanced image.Image) (Item, error) {
	if original == nil {
		return it, errors.New("save item: no original image")
	}
	if _, err := uuid.Parse(it.ID); err != nil {
		return it, fmt.Errorf("save item: bad id %q: %w", it.ID, err)
	}
	folder := filepath.Join(dir, it.ID)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return it, fmt.Errorf("save item: %w", err)
	}

	if err := writePNG(filepath.Join(folder, originalFile), original); err != nil {
		return it, err
	}
	it.Original = originalFile
	if enhanced != nil {
		if err := writePNG(filepath.Join(folder, enhancedFile), enhanced); err != nil {
			return it, err
		}
		it.Enhanced = enhancedFile
	}

	data, err := json.MarshalIndent(it, "", "  ")
	if err != nil {
		return it, fmt.Errorf("save item: %w", err)
	}
	if err := os.WriteFile(filepath.Join(folder, itemFile), data, 0o644); err != nil {
		return it, fmt.Errorf("save item: %w", err)
	}
	return it, nil
}

// ListItems reads every item under dir, newest first. Folders without
// readable metadata are skipped.
func ListItems(dir string) ([]Item, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	var items []Item
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name(), itemFile))
		if err != nil {
			continue
		}
		var it Item
		if err := json.Unmarshal(data, &it); err != nil {
			continue
		}
		items = append(items, it)
	}
	slices.SortFunc(items, func(a, b Item) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return items, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return PNG(f, img)
}
