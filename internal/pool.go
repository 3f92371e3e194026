package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds buffers used to format log and notification text.
var BufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 64))
	},
}
