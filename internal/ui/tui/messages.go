package tui

type pathCheckedMsg struct {
	field int
	path  string
	err   error
}
