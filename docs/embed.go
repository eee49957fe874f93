package docs

import "embed"

// FS contains the transcription guide bundled with the scribe binary.
//
//go:embed guide
var FS embed.FS
