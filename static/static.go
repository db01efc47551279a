// Package static embeds the default site map shipped with the binary.
package static

import "embed"

// SiteMapName is the name of the embedded site map inside FS.
const SiteMapName = "map.json"

//go:embed map.json
var FS embed.FS
