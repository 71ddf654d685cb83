package upload

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/hashicorp-forge/dtif/pkg/dtif"
)

// Sniff returns the content type of an exported image or font file.
func Sniff(data []byte) dtif.ContentType {
	switch http.DetectContentType(data) {
	case "image/png":
		return dtif.ContentPng
	case "image/jpeg":
		return dtif.ContentJpeg
	case "image/gif":
		return dtif.ContentGif
	case "font/ttf":
		return dtif.ContentTtf
	case "font/otf":
		return dtif.ContentOtf
	case "font/woff":
		return dtif.ContentWoff
	case "font/woff2":
		return dtif.ContentWoff2
	}
	if isSVG(data) {
		return dtif.ContentSvg
	}
	// TrueType collections and Apple fonts use the "true" tag.
	if bytes.HasPrefix(data, []byte("true")) {
		return dtif.ContentTtf
	}
	return dtif.ContentUnknown
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.TrimSpace(head)
	if bytes.HasPrefix(head, []byte("<svg")) {
		return true
	}
	return bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))
}

var extensions = map[dtif.ContentType]string{
	dtif.ContentPng:   ".png",
	dtif.ContentJpeg:  ".jpg",
	dtif.ContentGif:   ".gif",
	dtif.ContentSvg:   ".svg",
	dtif.ContentTtf:   ".ttf",
	dtif.ContentOtf:   ".otf",
	dtif.ContentWoff:  ".woff",
	dtif.ContentWoff2: ".woff2",
}

// Key builds an upload key from a record ID and a display name, e.g.
// Key("a3", "Inter Bold", dtif.ContentTtf) is "a3-inter-bold.ttf".
func Key(recordID, name string, ct dtif.ContentType) string {
	key := recordID
	if slug := strcase.ToKebab(strings.TrimSpace(name)); slug != "" {
		key += "-" + slug
	}
	return key + extensions[ct]
}
