package tplpack

import (
	"bytes"
	"encoding/base64"
	"image"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	// Register decoders for dimension sniffing. PNG, JPEG and GIF come
	// from the standard library; WebP needs the extension package.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/rvalk/go-tplpack/internal/htmlutil"
)

// CollectAssets scans a live tree for inline-embedded image content and
// extracts it into named binary blobs. Only Image-typed nodes whose src
// is a self-describing data: URL and which carry a recorded logical
// name contribute; external or already-persisted references are skipped
// and assumed valid. When several nodes share a logical name, the last
// one visited wins.
func CollectAssets(doc *html.Node) map[string][]byte {
	assets := map[string][]byte{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && htmlutil.Attr(n, "data-node-type") == string(NodeImage) {
			name := htmlutil.Attr(n, "data-asset-name")
			src := htmlutil.Attr(n, "src")
			if name != "" {
				if blob, ok := DecodeDataURL(src); ok {
					assets[name] = blob
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return assets
}

// CollectAssetsHTML parses markup and collects its assets.
func CollectAssetsHTML(markup string) (map[string][]byte, error) {
	body, err := htmlutil.Parse(markup)
	if err != nil {
		return nil, err
	}
	return CollectAssets(body), nil
}

// ResolveAssets builds the embeddable reference map the importer
// consumes: each blob becomes a base64 data: URL with a sniffed
// content type.
func ResolveAssets(assets map[string][]byte) map[string]string {
	resolved := make(map[string]string, len(assets))
	for name, blob := range assets {
		resolved[name] = EncodeDataURL(blob)
	}
	return resolved
}

// EncodeDataURL renders a blob as a base64 data: URL.
func EncodeDataURL(blob []byte) string {
	mime := http.DetectContentType(blob)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(blob)
}

// DecodeDataURL extracts the binary payload from a base64 data: URL.
// Returns false for any other reference form.
func DecodeDataURL(src string) ([]byte, bool) {
	if !strings.HasPrefix(src, "data:") {
		return nil, false
	}
	meta, payload, ok := strings.Cut(src, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, false
	}
	blob, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some encoders omit padding.
		blob, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, false
		}
	}
	return blob, true
}

// ImageDimensions sniffs the pixel dimensions of an encoded image blob.
// Supports PNG, JPEG, GIF and WebP. Returns false when the format is
// not recognized.
func ImageDimensions(blob []byte) (width, height int, ok bool) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(blob))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}
