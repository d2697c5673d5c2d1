package ports

// Progress receives per-item updates from the network-bound stages.
type Progress interface {
	Begin(stage string, total int)
	Advance(item string, ok bool)
	End()
}

// NopProgress discards all updates.
type NopProgress struct{}

func (NopProgress) Begin(string, int)    {}
func (NopProgress) Advance(string, bool) {}
func (NopProgress) End()                 {}
