// Package templates holds the HTML layouts rendered by the document service.
package templates

import "embed"

// FS contains documents/*.html
//
//go:embed documents/*.html
var FS embed.FS
