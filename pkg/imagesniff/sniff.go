// Package imagesniff recognizes image files by their leading bytes.
// File extensions are never consulted.
package imagesniff

import (
	"io"
	"log/slog"
	"os"

	"github.com/h2non/filetype"
)

// headerSize is how much of a file the filetype matchers look at.
const headerSize = 262

// Kind names a detected image format.
type Kind struct {
	Extension string
	MIME      string
}

// Sniffer is the file-backed classifier used by the pack builder.
type Sniffer struct{}

func (Sniffer) IsImage(path string) bool {
	_, ok := Detect(path)
	return ok
}

// Detect reports the image format of the file at path. Files that
// cannot be opened or read count as "not an image".
func Detect(path string) (Kind, bool) {
	f, err := os.Open(path)
	if err != nil {
		slog.Debug("sniff open", "path", path, "err", err)
		return Kind{}, false
	}
	defer f.Close()

	buf := make([]byte, headerSize)
	n, err := io.ReadFull(f, buf)
	if err != nil &&
		err != io.ErrUnexpectedEOF &&
		err != io.EOF {
		slog.Debug("sniff read", "path", path, "err", err)
		return Kind{}, false
	}
	return DetectBytes(buf[:n])
}

func DetectBytes(head []byte) (Kind, bool) {
	if len(head) == 0 {
		return Kind{}, false
	}
	kind, err := filetype.Image(head)
	if err != nil || kind == filetype.Unknown {
		return Kind{}, false
	}
	return Kind{
		Extension: kind.Extension,
		MIME:      kind.MIME.Value,
	}, true
}
