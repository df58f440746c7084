package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templates embed.FS

// Layout wraps every page, the page itself is rendered at {{embed}}.
const Layout = "layout"

// New returns the engine over the embedded pages. Pass it as fiber.Config.Views
// together with ViewsLayout: Layout.
func New() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		// the directory is embedded, Sub only fails on an invalid path
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
