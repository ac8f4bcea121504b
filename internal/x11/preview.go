package x11

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/cegui/internal/geom"
	"github.com/1broseidon/cegui/internal/platform"
)

// PreviewOptions configures a Preview window
type PreviewOptions struct {
	Title  string
	FPS    int
	Logger *slog.Logger

	// Scale multiplies the session's display size for the window size.
	Scale float32
	// Tasks, when set, are run on the event loop between frames.
	Tasks <-chan func()
}

// Preview is an X11 window presenting a session's frames. Pointer and key
// events are injected into the session's runtime; arrows and Tab move
// focus through its navigator.
type Preview struct {
	conn    *Connection
	session *platform.Session
	opts    PreviewOptions
	log     *slog.Logger

	win    *xwindow.Window
	gc     xproto.Gcontext
	width  int
	height int

	deleteAtom xproto.Atom
	scaled     *image.RGBA
	buf        []byte
	closed     bool
}

var _ platform.Host = (*Preview)(nil)

// NewPreview creates and maps a window sized for the session's display
func NewPreview(conn *Connection, s *platform.Session, opts PreviewOptions) (*Preview, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Title == "" {
		opts.Title = "cegui preview"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if depth := conn.XUtil.Screen().RootDepth; depth != 24 && depth != 32 {
		return nil, fmt.Errorf("unsupported root depth %d: need a 24 or 32 bit TrueColor visual", depth)
	}

	sz := s.Runtime.DisplaySize()
	p := &Preview{
		conn:    conn,
		session: s,
		opts:    opts,
		log:     opts.Logger,
		width:   max(int(sz.Width*opts.Scale), 1),
		height:  max(int(sz.Height*opts.Scale), 1),
	}
	if err := p.createWindow(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Preview) createWindow() error {
	xu := p.conn.XUtil
	win, err := xwindow.Generate(xu)
	if err != nil {
		return fmt.Errorf("failed to allocate window id: %w", err)
	}
	mask := xproto.EventMaskExposure | xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskPointerMotion |
		xproto.EventMaskLeaveWindow | xproto.EventMaskStructureNotify
	win.Create(p.conn.Root, 0, 0, p.width, p.height,
		xproto.CwBackPixel|xproto.CwEventMask, 0x202020, uint32(mask))

	if err := ewmh.WmNameSet(xu, win.Id, p.opts.Title); err != nil {
		p.log.Debug("failed to set _NET_WM_NAME", "error", err)
	}
	if err := icccm.WmNameSet(xu, win.Id, p.opts.Title); err != nil {
		p.log.Debug("failed to set WM_NAME", "error", err)
	}
	if err := icccm.WmProtocolsSet(xu, win.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		p.log.Debug("failed to set WM_PROTOCOLS", "error", err)
	}
	if atom, err := xprop.Atm(xu, "WM_DELETE_WINDOW"); err == nil {
		p.deleteAtom = atom
	}

	gc, err := xproto.NewGcontextId(xu.Conn())
	if err != nil {
		win.Destroy()
		return fmt.Errorf("failed to allocate graphics context: %w", err)
	}
	if err := xproto.CreateGCChecked(xu.Conn(), gc, xproto.Drawable(win.Id), 0, nil).Check(); err != nil {
		win.Destroy()
		return fmt.Errorf("failed to create graphics context: %w", err)
	}

	p.win = win
	p.gc = gc
	p.connectHandlers()
	win.Map()
	return nil
}

func (p *Preview) connectHandlers() {
	xu := p.conn.XUtil
	id := p.win.Id
	rt := p.session.Runtime

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			p.redraw()
		}
	}).Connect(xu, id)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		w, h := int(ev.Width), int(ev.Height)
		if w == p.width && h == p.height {
			return
		}
		p.width, p.height = w, h
		if err := p.session.Resize(geom.Sz(float32(w)/p.opts.Scale, float32(h)/p.opts.Scale)); err != nil {
			p.log.Debug("ignoring resize", "width", w, "height", h, "error", err)
		}
	}).Connect(xu, id)

	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		x, y := p.toDisplay(ev.EventX, ev.EventY)
		rt.InjectMousePosition(x, y)
	}).Connect(xu, id)

	xevent.LeaveNotifyFun(func(_ *xgbutil.XUtil, _ xevent.LeaveNotifyEvent) {
		rt.InjectMouseLeaves()
	}).Connect(xu, id)

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		x, y := p.toDisplay(ev.EventX, ev.EventY)
		rt.InjectMousePosition(x, y)
		btn, wheel, ok := buttonFromDetail(byte(ev.Detail))
		switch {
		case !ok:
		case wheel != 0:
			rt.InjectMouseWheelChange(wheel)
		default:
			rt.InjectMouseButtonDown(btn)
		}
	}).Connect(xu, id)

	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if btn, wheel, ok := buttonFromDetail(byte(ev.Detail)); ok && wheel == 0 {
			rt.InjectMouseButtonUp(btn)
		}
	}).Connect(xu, id)

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		sym := uint32(keybind.KeysymGet(xu, ev.Detail, 0))
		if v, ok := navigationFor(sym, ev.State); ok {
			p.session.Navigate(v)
			return
		}
		if rt.InjectKeyDown(keyFromKeysym(sym)) {
			return
		}
		if r, ok := typedRune(keybind.LookupString(xu, ev.State, ev.Detail)); ok {
			rt.InjectChar(r)
		}
	}).Connect(xu, id)

	xevent.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		sym := uint32(keybind.KeysymGet(xu, ev.Detail, 0))
		if _, ok := navigationFor(sym, ev.State); !ok {
			rt.InjectKeyUp(keyFromKeysym(sym))
		}
	}).Connect(xu, id)

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if p.deleteAtom != 0 && len(ev.Data.Data32) > 0 && xproto.Atom(ev.Data.Data32[0]) == p.deleteAtom {
			p.log.Info("preview window closed")
			p.closed = true
			xevent.Quit(xu)
		}
	}).Connect(xu, id)
}

func (p *Preview) toDisplay(x, y int16) (float32, float32) {
	return float32(x) / p.opts.Scale, float32(y) / p.opts.Scale
}

// DisplaySize is the window size in display pixels
func (p *Preview) DisplaySize() (geom.Size, error) {
	return geom.Sz(float32(p.width)/p.opts.Scale, float32(p.height)/p.opts.Scale), nil
}

// Present uploads img in strips that fit the server's request limit
func (p *Preview) Present(img *image.RGBA) error {
	if p.closed {
		return nil
	}
	src := img
	if img.Rect.Dx() != p.width || img.Rect.Dy() != p.height {
		p.scaled = scaleFrame(p.scaled, img, p.width, p.height)
		src = p.scaled
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	p.buf = toBGRX(p.buf, src)

	xu := p.conn.XUtil
	depth := xu.Screen().RootDepth
	rows := stripRows(w, int(xu.Setup().MaximumRequestLength))
	for y := 0; y < h; y += rows {
		n := min(rows, h-y)
		data := p.buf[y*w*4 : (y+n)*w*4]
		xproto.PutImage(xu.Conn(), xproto.ImageFormatZPixmap, xproto.Drawable(p.win.Id), p.gc,
			uint16(w), uint16(n), 0, int16(y), 0, depth, data)
	}
	xu.Sync()
	return nil
}

func (p *Preview) redraw() {
	if err := p.Present(p.session.Renderer.Frame()); err != nil {
		p.log.Warn("redraw failed", "error", err)
	}
}

// Run renders frames at the configured rate. X events are handled between
// frames on the same goroutine, so the runtime is never used concurrently.
func (p *Preview) Run(ctx context.Context, frame platform.Frame) error {
	xu := p.conn.XUtil
	before, after, quit := xevent.MainPing(xu)
	ticker := time.NewTicker(time.Second / time.Duration(p.opts.FPS))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			xevent.Quit(xu)
			return ctx.Err()
		case <-before:
			<-after
		case <-quit:
			return nil
		case task := <-p.opts.Tasks:
			task()
		case now := <-ticker.C:
			elapsed := float32(now.Sub(last).Seconds())
			last = now
			img, err := frame(elapsed)
			if err != nil {
				xevent.Quit(xu)
				return err
			}
			if err := p.Present(img); err != nil {
				xevent.Quit(xu)
				return err
			}
		}
	}
}

// Close destroys the window and its graphics context
func (p *Preview) Close() {
	if p.win == nil {
		return
	}
	xproto.FreeGC(p.conn.XUtil.Conn(), p.gc)
	xevent.Detach(p.conn.XUtil, p.win.Id)
	p.win.Destroy()
	p.win = nil
}
