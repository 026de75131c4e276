package editsession

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"
)

var (
	// ErrSessionActive is returned by Open while another session is in
	// progress. Starting a second edit for the same viewer is rejected,
	// not queued.
	ErrSessionActive = errors.New("an edit session is already active")

	// ErrPopupBlocked is surfaced when the editor window cannot be opened.
	ErrPopupBlocked = errors.New("pop-up blocked, please allow pop-ups for this site")

	// ErrEditTimeout is surfaced when an editing session exceeds the
	// configured timeout. Only used when Options.EditTimeout > 0.
	ErrEditTimeout = errors.New("editor session timed out")
)

// State of the controller. Exactly one session may be in a non-idle state.
type State int

const (
	StateIdle State = iota
	StateOpening
	StateEditing
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpening:
		return "opening"
	case StateEditing:
		return "editing"
	case StateUploading:
		return "uploading"
	default:
		return "unknown"
	}
}

const (
	defaultPollInterval = time.Second
	defaultEditorURL    = "https://pixlr.com/editor/"
)

// Uploader persists an accepted edit: decode the data URI, store the bytes,
// update the asset record. Implemented by the assets service.
type Uploader interface {
	ApplyEditedImage(ctx context.Context, userID, assetID, dataURI string) (string, error)
}

// Hooks receive terminal session outcomes. Nil fields are skipped.
type Hooks struct {
	// ImageUpdated is called with the new public URL after a successful
	// upload, so the visible asset view can refresh without a reload.
	ImageUpdated func(newURL string)

	// Cancelled is called when the user cancels in the editor.
	Cancelled func()

	// Failed is called with a user-facing error on any failed outcome.
	Failed func(err error)
}

// Options configure a Controller.
type Options struct {
	// Origin is the hosting origin. Relay messages from any other origin
	// are discarded unconditionally.
	Origin string

	// EditorURL is the external editor base, e.g. "https://pixlr.com/editor/".
	EditorURL string

	// CallbackURL is the fixed same-origin callback target passed to the
	// editor.
	CallbackURL string

	// PollInterval is how often the external window is checked for closure.
	// Defaults to one second.
	PollInterval time.Duration

	// EditTimeout bounds how long a session may stay in the editing state.
	// Zero disables the timeout.
	EditTimeout time.Duration
}

// EditRequest names the asset being edited and its current image.
type EditRequest struct {
	AssetID  string
	UserID   string
	ImageURL string
	Title    string
	ExitURL  string
}

// EditorURLFor builds the external editor URL for a request: image source,
// display title, fixed callback target, exit URL, plus flags locking the
// target and using same-origin credentials.
func (o Options) EditorURLFor(req EditRequest) string {
	base := o.EditorURL
	if base == "" {
		base = defaultEditorURL
	}
	title := req.Title
	if title == "" {
		title = "Edit Image"
	}

	params := url.Values{}
	params.Set("image", req.ImageURL)
	params.Set("referrer", "Socialboard")
	params.Set("title", title)
	params.Set("target", o.CallbackURL)
	params.Set("exit", req.ExitURL)
	params.Set("locktarget", "1")
	params.Set("credentials", "same-origin")

	return base + "?" + params.Encode()
}

// Controller owns at most one in-progress edit session. It is driven by
// asynchronous events: relay message arrival and window-closed poll ticks.
// All terminal transitions deregister the message listener and stop the poll.
type Controller struct {
	opener   WindowOpener
	channel  MessageChannel
	uploader Uploader
	opts     Options
	hooks    Hooks

	mu          sync.Mutex
	state       State
	assetID     string
	userID      string
	ctx         context.Context
	win         WindowHandle
	unsubscribe func()
	stop        chan struct{}
	stopOnce    *sync.Once
	lastErr     error
	lastURL     string
}

func NewController(opener WindowOpener, channel MessageChannel, uploader Uploader, opts Options, hooks Hooks) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.EditorURL == "" {
		opts.EditorURL = defaultEditorURL
	}
	return &Controller{
		opener:   opener,
		channel:  channel,
		uploader: uploader,
		opts:     opts,
		hooks:    hooks,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastError returns the user-facing error of the most recent failed outcome,
// or nil. Cleared on cancel and success.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// LastURL returns the public URL produced by the most recent successful edit.
func (c *Controller) LastURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastURL
}

// Open starts an edit session for one asset: it builds the editor URL, opens
// the external window, registers the relay listener and starts the
// window-closed poll. It returns ErrSessionActive if a session is already in
// progress and ErrPopupBlocked if the window cannot be created.
func (c *Controller) Open(ctx context.Context, req EditRequest) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrSessionActive
	}
	c.state = StateOpening
	c.assetID = req.AssetID
	c.userID = req.UserID
	c.ctx = ctx
	c.lastErr = nil
	c.mu.Unlock()

	win, err := c.opener.Open(c.opts.EditorURLFor(req))
	if err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.lastErr = ErrPopupBlocked
		c.mu.Unlock()
		c.fireFailed(ErrPopupBlocked)
		return ErrPopupBlocked
	}

	c.mu.Lock()
	c.win = win
	c.stop = make(chan struct{})
	c.stopOnce = &sync.Once{}
	c.unsubscribe = c.channel.OnMessage(c.handleMessage)
	c.state = StateEditing
	stop := c.stop
	c.mu.Unlock()

	go c.pollWindow(win, stop)

	return nil
}

func (c *Controller) handleMessage(in Incoming) {
	if in.Origin != c.opts.Origin {
		return
	}

	switch in.Message.Type {
	case KindAccepted:
		c.mu.Lock()
		// not for this session, or an upload is already running
		if c.state != StateEditing || in.Message.AssetID != c.assetID {
			c.mu.Unlock()
			return
		}
		c.state = StateUploading
		ctx, userID, assetID, data := c.ctx, c.userID, c.assetID, in.Message.ImageData
		c.mu.Unlock()

		go c.upload(ctx, userID, assetID, data)

	case KindCancelled:
		c.mu.Lock()
		if c.state != StateEditing {
			c.mu.Unlock()
			return
		}
		c.teardownLocked()
		c.state = StateIdle
		c.lastErr = nil
		c.mu.Unlock()

		c.fireCancelled()

	case KindError:
		c.mu.Lock()
		if c.state != StateEditing {
			c.mu.Unlock()
			return
		}
		c.teardownLocked()
		c.state = StateIdle
		msg := in.Message.Message
		if msg == "" {
			msg = "an error occurred in the editor"
		}
		err := errors.New(msg)
		c.lastErr = err
		c.mu.Unlock()

		c.fireFailed(err)
	}
}

func (c *Controller) upload(ctx context.Context, userID, assetID, dataURI string) {
	newURL, err := c.uploader.ApplyEditedImage(ctx, userID, assetID, dataURI)

	c.mu.Lock()
	if c.state != StateUploading {
		c.mu.Unlock()
		return
	}
	c.teardownLocked()
	c.state = StateIdle
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		c.fireFailed(err)
		return
	}
	c.lastErr = nil
	c.lastURL = newURL
	c.mu.Unlock()

	c.fireImageUpdated(newURL)
}

// pollWindow watches the external window for closure and enforces the
// optional editing timeout. It exits when the session reaches a terminal
// state.
func (c *Controller) pollWindow(win WindowHandle, stop chan struct{}) {
	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	var timeoutC <-chan time.Time
	if c.opts.EditTimeout > 0 {
		timer := time.NewTimer(c.opts.EditTimeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	for {
		select {
		case <-stop:
			return
		case <-timeoutC:
			c.mu.Lock()
			if c.state != StateEditing {
				c.mu.Unlock()
				return
			}
			c.teardownLocked()
			c.state = StateIdle
			c.lastErr = ErrEditTimeout
			c.mu.Unlock()

			c.fireFailed(ErrEditTimeout)
			return
		case <-ticker.C:
			if !win.Closed() {
				continue
			}
			c.mu.Lock()
			// an upload in flight keeps going after the editor window
			// closes itself
			if c.state != StateEditing {
				c.mu.Unlock()
				return
			}
			c.teardownLocked()
			c.state = StateIdle
			c.lastErr = nil
			c.mu.Unlock()
			return
		}
	}
}

// teardownLocked deregisters the relay listener and signals the poll to stop.
// Callers must hold c.mu.
func (c *Controller) teardownLocked() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.stopOnce != nil {
		stop := c.stop
		c.stopOnce.Do(func() { close(stop) })
	}
	c.win = nil
}

func (c *Controller) fireImageUpdated(u string) {
	if c.hooks.ImageUpdated != nil {
		c.hooks.ImageUpdated(u)
	}
}

func (c *Controller) fireCancelled() {
	if c.hooks.Cancelled != nil {
		c.hooks.Cancelled()
	}
}

func (c *Controller) fireFailed(err error) {
	if c.hooks.Failed != nil {
		c.hooks.Failed(err)
	}
}
