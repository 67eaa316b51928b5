// Package web はサーバーサイドレンダリング用のHTMLテンプレートを保持します。
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates は埋め込まれた全テンプレートをパースして返します。
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
