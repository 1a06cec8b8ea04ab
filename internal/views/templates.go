package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/url"
	"strconv"
	"time"

	"traveling_help/internal/api"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static is the embedded stylesheet and script directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates parses every page and partial with times rendered in loc.
func Templates(loc *time.Location) (*template.Template, error) {
	return template.New("").Funcs(funcs(loc)).ParseFS(templateFS, "templates/*.tmpl")
}

func funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"formatDate": FormatDate,
		"formatTime": func(t time.Time) string { return FormatTime(t, loc) },
		"price":      FormatPrice,
		"contact": func(p api.Post) map[string]template.URL {
			c := ContactFor(p, loc)
			// The scheme is fixed by ContactFor; html/template would otherwise blank tel: links.
			return map[string]template.URL{
				"Call":     template.URL(c.Call),
				"WhatsApp": template.URL(c.WhatsApp),
			}
		},
		"ridesURL": RidesURL,
	}
}

// RidesURL is the listing address for a page and filter pair.
func RidesURL(path string, page int, from, to string) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
