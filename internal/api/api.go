// Package api is the HTTP control surface: build info, window inspection and
// property changes over the same sparse-delta model the engine uses.
package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ryngard/xsurface/internal/build"
	"github.com/ryngard/xsurface/internal/render"
	"github.com/ryngard/xsurface/internal/xwindow"
	"github.com/ryngard/xsurface/pkg/chiext"
)

func New(windows []*xwindow.Window) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())
	r.Use(middleware.Recoverer)

	api := humachi.New(r, huma.DefaultConfig("xsurface", build.Current.Version))
	register(api, windows)

	return r
}

// WindowModel is the wire form of a window's state. Absent attributes are
// omitted, mirroring the sparse property model.
type WindowModel struct {
	UUID        string             `json:"uuid"`
	Open        bool               `json:"open"`
	Title       *string            `json:"title,omitempty"`
	X           *int32             `json:"x,omitempty"`
	Y           *int32             `json:"y,omitempty"`
	Width       *uint32            `json:"width,omitempty"`
	Height      *uint32            `json:"height,omitempty"`
	Fullscreen  *bool              `json:"fullscreen,omitempty"`
	Undecorated *bool              `json:"undecorated,omitempty"`
	Minimized   *bool              `json:"minimized,omitempty"`
	Foreground  *bool              `json:"foreground,omitempty"`
	HideCursor  *bool              `json:"hide_cursor,omitempty"`
	FixedSize   *bool              `json:"fixed_size,omitempty"`
	RawMice     *bool              `json:"raw_mice,omitempty"`
	ZOrder      *string            `json:"z_order,omitempty"`
	Framebuffer *render.Properties `json:"framebuffer,omitempty"`
}

func windowModel(w *xwindow.Window) WindowModel {
	p := w.Properties()
	m := WindowModel{
		UUID: w.UUID,
		Open: w.IsOpen(),
	}
	if p.HasTitle() {
		title := p.Title()
		m.Title = &title
	}
	if p.HasOrigin() {
		x, y := p.Origin()
		m.X, m.Y = &x, &y
	}
	if p.HasSize() {
		width, height := p.Size()
		m.Width, m.Height = &width, &height
	}
	boolAttr := func(has bool, v bool) *bool {
		if !has {
			return nil
		}
		return &v
	}
	m.Fullscreen = boolAttr(p.HasFullscreen(), p.Fullscreen())
	m.Undecorated = boolAttr(p.HasUndecorated(), p.Undecorated())
	m.Minimized = boolAttr(p.HasMinimized(), p.Minimized())
	m.Foreground = boolAttr(p.HasForeground(), p.Foreground())
	m.HideCursor = boolAttr(p.HasCursorHidden(), p.CursorHidden())
	m.FixedSize = boolAttr(p.HasFixedSize(), p.FixedSize())
	m.RawMice = boolAttr(p.HasRawMice(), p.RawMice())
	if p.HasZOrder() {
		z := p.ZOrder().String()
		m.ZOrder = &z
	}
	if m.Open {
		fb := w.Framebuffer()
		m.Framebuffer = &fb
	}
	return m
}

// PropertiesBody is a sparse property delta. Origin and size come as pairs.
type PropertiesBody struct {
	Title       *string `json:"title,omitempty"`
	X           *int32  `json:"x,omitempty"`
	Y           *int32  `json:"y,omitempty"`
	Width       *uint32 `json:"width,omitempty"`
	Height      *uint32 `json:"height,omitempty"`
	Fullscreen  *bool   `json:"fullscreen,omitempty"`
	Undecorated *bool   `json:"undecorated,omitempty"`
	Minimized   *bool   `json:"minimized,omitempty"`
	Foreground  *bool   `json:"foreground,omitempty"`
	HideCursor  *bool   `json:"hide_cursor,omitempty"`
	FixedSize   *bool   `json:"fixed_size,omitempty"`
	ZOrder      *string `json:"z_order,omitempty" enum:"bottom,normal,top"`
}

func (b PropertiesBody) delta() (xwindow.Properties, error) {
	var p xwindow.Properties
	if b.Title != nil {
		p.SetTitle(*b.Title)
	}
	if b.X != nil || b.Y != nil {
		if b.X == nil || b.Y == nil {
			return p, huma.Error422UnprocessableEntity("x and y must be set together")
		}
		p.SetOrigin(*b.X, *b.Y)
	}
	if b.Width != nil || b.Height != nil {
		if b.Width == nil || b.Height == nil {
			return p, huma.Error422UnprocessableEntity("width and height must be set together")
		}
		p.SetSize(*b.Width, *b.Height)
	}
	if b.Fullscreen != nil {
		p.SetFullscreen(*b.Fullscreen)
	}
	if b.Undecorated != nil {
		p.SetUndecorated(*b.Undecorated)
	}
	if b.Minimized != nil {
		p.SetMinimized(*b.Minimized)
	}
	if b.Foreground != nil {
		p.SetForeground(*b.Foreground)
	}
	if b.HideCursor != nil {
		p.SetCursorHidden(*b.HideCursor)
	}
	if b.FixedSize != nil {
		p.SetFixedSize(*b.FixedSize)
	}
	if b.ZOrder != nil {
		z, err := xwindow.ParseZOrder(*b.ZOrder)
		if err != nil {
			return p, huma.Error422UnprocessableEntity(err.Error())
		}
		p.SetZOrder(z)
	}
	return p, nil
}

type BuildOutput struct {
	Body build.Build
}

type WindowsOutput struct {
	Body []WindowModel
}

type WindowOutput struct {
	Body WindowModel
}

func register(api huma.API, windows []*xwindow.Window) {
	find := func(uuid string) (*xwindow.Window, error) {
		for _, w := range windows {
			if w.UUID == uuid {
				return w, nil
			}
		}
		return nil, huma.Error404NotFound("window not found")
	}

	huma.Get(api, "/api/build", func(ctx context.Context, _ *struct{}) (*BuildOutput, error) {
		return &BuildOutput{Body: build.Current}, nil
	})

	huma.Get(api, "/api/windows", func(ctx context.Context, _ *struct{}) (*WindowsOutput, error) {
		models := make([]WindowModel, 0, len(windows))
		for _, w := range windows {
			models = append(models, windowModel(w))
		}
		return &WindowsOutput{Body: models}, nil
	})

	huma.Get(api, "/api/windows/{uuid}", func(ctx context.Context, input *struct {
		UUID string `path:"uuid"`
	}) (*WindowOutput, error) {
		w, err := find(input.UUID)
		if err != nil {
			return nil, err
		}
		return &WindowOutput{Body: windowModel(w)}, nil
	})

	huma.Post(api, "/api/windows/{uuid}/properties", func(ctx context.Context, input *struct {
		UUID string `path:"uuid"`
		Body PropertiesBody
	}) (*WindowOutput, error) {
		w, err := find(input.UUID)
		if err != nil {
			return nil, err
		}
		delta, err := input.Body.delta()
		if err != nil {
			return nil, err
		}
		w.RequestProperties(delta)
		return &WindowOutput{Body: windowModel(w)}, nil
	})

	huma.Post(api, "/api/windows/{uuid}/open", func(ctx context.Context, input *struct {
		UUID string `path:"uuid"`
	}) (*WindowOutput, error) {
		w, err := find(input.UUID)
		if err != nil {
			return nil, err
		}
		if err := w.Open(); err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		return &WindowOutput{Body: windowModel(w)}, nil
	})

	huma.Post(api, "/api/windows/{uuid}/close", func(ctx context.Context, input *struct {
		UUID string `path:"uuid"`
	}) (*WindowOutput, error) {
		w, err := find(input.UUID)
		if err != nil {
			return nil, err
		}
		w.Close()
		return &WindowOutput{Body: windowModel(w)}, nil
	})
}
