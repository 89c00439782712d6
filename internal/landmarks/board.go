package landmarks

import "sync"

// Board is the text region landmark text is written to. Each update
// replaces the previous text.
type Board struct {
	mu       sync.RWMutex
	text     string
	updates  uint64
	onChange func(text string)
}

// NewBoard creates an empty board. onChange, when non-nil, is called after
// every update.
func NewBoard(onChange func(text string)) *Board {
	return &Board{onChange: onChange}
}

// Text returns the current text.
func (b *Board) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Updates returns how many times the text was written.
func (b *Board) Updates() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updates
}

// Set replaces the text.
func (b *Board) Set(text string) {
	b.mu.Lock()
	b.text = text
	b.updates++
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(text)
	}
}

// Apply renders an inbound message onto the board. On error the board is
// left unchanged.
func (b *Board) Apply(data []byte) error {
	text, err := Render(data)
	if err != nil {
		return err
	}
	b.Set(text)
	return nil
}
