package render

import "io"

// Document is a generated edge document that can be served or exported.
type Document interface {
	Name() string
	ContentType() string
	Render(w io.Writer) error
}
