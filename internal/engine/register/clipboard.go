package register

import (
	"sync"

	"github.com/atotto/clipboard"
)

// ClipboardProvider abstracts system clipboard access for + and *.
type ClipboardProvider interface {
	Get() (string, error)
	Set(content string) error
}

// MemoryClipboard is a process-local clipboard, the default provider.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// Get returns the stored text.
func (m *MemoryClipboard) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Set stores text.
func (m *MemoryClipboard) Set(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = content
	return nil
}

// SystemClipboard talks to the operating system clipboard.
type SystemClipboard struct{}

// Available reports whether a system clipboard utility was found.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// Get reads the system clipboard.
func (SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set writes the system clipboard.
func (SystemClipboard) Set(content string) error {
	return clipboard.WriteAll(content)
}
