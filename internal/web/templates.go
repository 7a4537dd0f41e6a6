package web

import (
	"html/template"
	"path/filepath"
	"strings"

	"github.com/jillest/goladder/internal/back"

	"github.com/russross/blackfriday/v2"
)

func (s *Server) loadTemplates(baseDir string) (map[string]*template.Template, error) {
	layouts, err := filepath.Glob(filepath.Join(baseDir, "templates/layouts/*.html"))
	if err != nil {
		return nil, err
	}

	includes, err := filepath.Glob(filepath.Join(baseDir, "templates/includes/*.html"))
	if err != nil {
		return nil, err
	}

	ret := make(map[string]*template.Template, len(layouts))
	for _, layout := range layouts {
		tpl, err := template.New("").
			Funcs(s.getTemplateFuncMap()).
			ParseFiles(append(includes, layout)...)
		if err != nil {
			return nil, err
		}

		key := strings.TrimPrefix(layout, filepath.Join(baseDir, "templates/layouts")+"/")
		ret[key] = tpl
	}

	return ret, nil
}

func (s *Server) getTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"rank": func(r float64) string {
			return s.back.RatingSystem().Rank(r)
		},

		"result": func(g back.Game) string {
			return g.FormatResult()
		},

		"md": func(str string) template.HTML {
			return template.HTML(blackfriday.Run([]byte(str))) // nolint:gosec
		},

		"deref": func(b *bool) bool {
			return b != nil && *b
		},

		"roundDescription": func(round back.Round) string {
			return round.ParseExtra().Description
		},
	}
}
