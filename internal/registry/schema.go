package registry

import (
	"path"
	"strings"

	"github.com/invopop/jsonschema"
)

// ImageMimeType infers the content type of a screenshot from its extension.
// Unknown extensions are served as JPEG.
func ImageMimeType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "image/jpeg"
	}
}

// Schema returns the JSON schema of a prototype.json manifest.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	s := r.Reflect(&Manifest{})
	s.Title = "Prototype manifest"
	s.Description = "Content of " + ManifestName + " in a prototype folder."
	return s
}
