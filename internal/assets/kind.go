package assets

import (
	"path"
	"strings"

	"github.com/h2non/filetype"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindGLB
	KindGLTF
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindGLB:
		return "glb"
	case KindGLTF:
		return "gltf"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// sniffLen is how much of a file DetectKind wants to see.
const sniffLen = 262

var glbType = filetype.AddType("glb", "model/gltf-binary")

func init() {
	filetype.AddMatcher(glbType, func(buf []byte) bool {
		return len(buf) >= 4 && string(buf[:4]) == "glTF"
	})
}

// DetectKind sniffs the first bytes of a file and falls back to the
// extension when the content is not recognised.
func DetectKind(name string, head []byte) Kind {
	if len(head) > 0 {
		t, err := filetype.Match(head)
		if err == nil {
			switch {
			case t == glbType:
				return KindGLB
			case filetype.IsImage(head):
				return KindImage
			}
		}
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".glb":
		return KindGLB
	case ".gltf":
		return KindGLTF
	case ".png", ".jpg", ".jpeg", ".gif":
		return KindImage
	}
	return KindUnknown
}
