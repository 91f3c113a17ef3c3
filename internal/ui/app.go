package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SketchBoard/internal/config"
	"SketchBoard/internal/enhance"
	"SketchBoard/internal/export"
	"SketchBoard/internal/tools"
)

type App struct {
	cfg      *config.Config
	log      *slog.Logger
	enhancer *enhance.Client

	window fyne.Window
	board  *Board
	bar    *toolbar
}

// Run opens the main window and blocks until it is closed.
func Run(cfg *config.Config, e *tools.Engine, enhancer *enhance.Client, log *slog.Logger) {
	a := app.NewWithID("dev.sketchboard")
	w := a.NewWindow("SketchBoard")
	w.Resize(fyne.NewSize(1024, 768))

	ui := newApp(cfg, e, enhancer, log, w)
	w.SetContent(ui.content())
	w.ShowAndRun()
}

func newApp(cfg *config.Config, e *tools.Engine, enhancer *enhance.Client, log *slog.Logger, w fyne.Window) *App {
	ui := &App{
		cfg:      cfg,
		log:      log,
		enhancer: enhancer,
		window:   w,
		board:    NewBoard(e),
	}
	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), ui.undo),
		widget.NewToolbarAction(theme.ContentClearIcon(), ui.confirmClear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), ui.savePNG),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), ui.savePDF),
		widget.NewToolbarAction(theme.FileIcon(), ui.saveDrawing),
		widget.NewToolbarAction(theme.FolderOpenIcon(), ui.openDrawing),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.UploadIcon(), ui.promptEnhance),
		widget.NewToolbarAction(theme.StorageIcon(), ui.showGallery),
	)
	ui.bar = newToolbar(ui.board, actions)
	ui.board.OnChange = ui.bar.updateStatus

	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { ui.undo() })
	w.Canvas().SetOnTypedKey(func(k *fyne.KeyEvent) {
		if k.Name == fyne.KeyEscape {
			ui.board.Engine().Select(tools.None)
			ui.bar.refresh()
		}
	})
	return ui
}

func (ui *App) content() fyne.CanvasObject {
	return container.NewBorder(ui.bar.content, nil, nil, nil, ui.board)
}

func (ui *App) undo() {
	ui.board.Engine().Undo()
	ui.board.changed()
}

func (ui *App) confirmClear() {
	dialog.ShowConfirm("Clear drawing", "Erase everything? This cannot be undone.", func(ok bool) {
		if !ok {
			return
		}
		ui.board.Engine().Clear()
		ui.board.changed()
	}, ui.window)
}

func (ui *App) savePNG() {
	ui.saveAs("sketch.png", func(w io.Writer, img image.Image) error {
		return export.PNG(w, img)
	})
}

func (ui *App) savePDF() {
	ui.saveAs("sketch.pdf", func(w io.Writer, img image.Image) error {
		return export.PDF(w, img, "SketchBoard")
	})
}

// saveAs asks for a destination and writes the flattened drawing with enc.
func (ui *App) saveAs(name string, enc func(io.Writer, image.Image) error) {
	img := ui.board.Engine().Export()
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if w == nil {
			return
		}
		err = enc(w, img)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			ui.log.Error("export failed", "uri", w.URI(), "error", err)
			dialog.ShowError(err, ui.window)
			return
		}
		ui.log.Info("exported", "uri", w.URI())
	}, ui.window)
	d.SetFileName(name)
	d.Show()
}

// saveDrawing writes the marks of a path surface as JSON so they can be
// reopened and edited later.
func (ui *App) saveDrawing() {
	e := ui.board.Engine()
	marks, err := e.Marks()
	if err != nil {
		dialog.ShowError(fmt.Errorf("save strokes: %w (start with SKETCHBOARD_BACKEND=paths)", err), ui.window)
		return
	}
	doc := export.NewDrawing(e.Surface().Bounds(), marks)
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if w == nil {
			return
		}
		err = export.WriteDrawing(w, doc)
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			ui.log.Error("save strokes failed", "uri", w.URI(), "error", err)
			dialog.ShowError(err, ui.window)
			return
		}
		ui.log.Info("strokes saved", "uri", w.URI(), "count", len(marks))
	}, ui.window)
	d.SetFileName("sketch.json")
	d.Show()
}

func (ui *App) openDrawing() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		if err := ui.loadDrawing(r); err != nil {
			ui.log.Error("open strokes failed", "uri", r.URI(), "error", err)
			dialog.ShowError(err, ui.window)
		}
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// loadDrawing replaces the drawing with the marks read from r. The load is
// one undo step.
func (ui *App) loadDrawing(r io.Reader) error {
	doc, err := export.ReadDrawing(r)
	if err != nil {
		return err
	}
	e := ui.board.Engine()
	if b := e.Surface().Bounds(); doc.Width != b.Dx() || doc.Height != b.Dy() {
		ui.log.Warn("drawing size differs from surface", "saved", fmt.Sprintf("%dx%d", doc.Width, doc.Height), "surface", b.Size())
	}
	e.LoadMarks(doc.Marks)
	ui.board.changed()
	return nil
}

func (ui *App) promptEnhance() {
	style := widget.NewSelectEntry([]string{"realistic", "watercolor", "cartoon", "oil painting", "pencil sketch"})
	prompt := widget.NewEntry()
	prompt.SetPlaceHolder("What did you draw?")
	dialog.ShowForm("Enhance sketch", "Enhance", "Cancel", []*widget.FormItem{
		widget.NewFormItem("Style", style),
		widget.NewFormItem("Prompt", prompt),
	}, func(ok bool) {
		if ok {
			ui.enhance(enhance.Request{
				Image:  ui.board.Engine().Export(),
				Style:  style.Text,
				Prompt: prompt.Text,
			})
		}
	}, ui.window)
}

// enhance calls the service off the UI goroutine and shows the result.
func (ui *App) enhance(req enhance.Request) {
	progress := dialog.NewCustomWithoutButtons("Enhancing…", widget.NewProgressBarInfinite(), ui.window)
	progress.Show()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), ui.cfg.Timeout)
		defer cancel()
		res, err := ui.enhancer.Enhance(ctx, req)
		fyne.Do(func() {
			progress.Hide()
			if err != nil {
				ui.log.Error("enhance failed", "error", err, "remote", errors.Is(err, enhance.ErrRemote))
				dialog.ShowError(err, ui.window)
				return
			}
			ui.log.Info("enhanced", "style", req.Style, "size", res.Image.Bounds().Size())
			ui.showEnhanced(req, res)
		})
	}()
}

func (ui *App) showEnhanced(req enhance.Request, res *enhance.Result) {
	preview := canvas.NewImageFromImage(res.Image)
	preview.FillMode = canvas.ImageFillContain
	preview.SetMinSize(fyne.NewSize(480, 360))

	var d dialog.Dialog
	drawOver := widget.NewButton("Draw over it", func() {
		ui.board.Engine().Load(res.Image)
		ui.board.changed()
		d.Hide()
	})
	content := container.NewBorder(nil, drawOver, nil, nil,
		container.NewVBox(preview, widget.NewLabel(res.Description)))

	d = dialog.NewCustomConfirm("Enhanced sketch", "Save to gallery", "Close", content, func(ok bool) {
		if ok {
			ui.saveToGallery(req, res)
		}
	}, ui.window)
	d.Show()
}

func (ui *App) saveToGallery(req enhance.Request, res *enhance.Result) {
	item := export.NewItem(req.Prompt, req.Prompt, req.Style)
	item.Description = res.Description
	item, err := export.SaveItem(ui.cfg.GalleryDir, item, req.Image, res.Image)
	if err != nil {
		ui.log.Error("gallery save failed", "error", err)
		dialog.ShowError(err, ui.window)
		return
	}
	ui.log.Info("saved to gallery", "id", item.ID, "dir", ui.cfg.GalleryDir)
	dialog.ShowInformation("Gallery", fmt.Sprintf("Saved %q.", item.Title), ui.window)
}

func (ui *App) showGallery() {
	items, err := export.ListItems(ui.cfg.GalleryDir)
	if err != nil {
		ui.log.Error("gallery listing failed", "dir", ui.cfg.GalleryDir, "error", err)
		dialog.ShowError(err, ui.window)
		return
	}
	if len(items) == 0 {
		dialog.ShowInformation("Gallery", "Nothing saved yet.", ui.window)
		return
	}
	d := dialog.NewCustom("Gallery", "Close", ui.galleryView(items), ui.window)
	d.Resize(fyne.NewSize(720, 480))
	d.Show()
}

// galleryView lists saved items newest first and previews the selected one.
func (ui *App) galleryView(items []export.Item) fyne.CanvasObject {
	preview := &canvas.Image{FillMode: canvas.ImageFillContain}
	preview.SetMinSize(fyne.NewSize(320, 240))
	about := widget.NewLabel("")
	about.Wrapping = fyne.TextWrapWord

	list := widget.NewList(
		func() int { return len(items) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, o fyne.CanvasObject) {
			it := items[id]
			o.(*widget.Label).SetText(fmt.Sprintf("%s  %s", it.Title, it.CreatedAt.Format("2006-01-02 15:04")))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		it := items[id]
		file := it.Enhanced
		if file == "" {
			file = it.Original
		}
		preview.File = filepath.Join(ui.cfg.GalleryDir, it.ID, file)
		preview.Refresh()
		about.SetText(it.Description)
	}
	return container.NewHSplit(list, container.NewBorder(nil, about, nil, nil, preview))
}
