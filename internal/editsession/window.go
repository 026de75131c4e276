package editsession

// WindowHandle is a live reference to an externally opened editor window.
// There is no native close event across windowing systems, so closure is
// observed by polling Closed.
type WindowHandle interface {
	Closed() bool
}

// WindowOpener opens a new window at the given URL. An error means the window
// could not be created at all (typically a blocked pop-up).
type WindowOpener interface {
	Open(url string) (WindowHandle, error)
}
