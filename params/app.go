package params

import (
	"os"
	"path/filepath"
	"time"
)

// DefaultIDProperty is the feature property carrying the integer identifier
// passed through to every output piece. Features without it fall back to
// their positional (file order) id.
const DefaultIDProperty = "id"

var DefaultMeterInterval = 5 * time.Second

var DefaultGZipCompressionLevel = 8

var DatadirRoot = func() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".polysplit")
}()
