// Package site renders the fixed artifact templates. Rendering is pure:
// the same context always produces byte-identical output, and a missing
// template name is an error rather than a recoverable condition.
package site

import (
	"bytes"
	"fmt"
	"html"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/yuin/goldmark"

	"memekit_server/internal/types"
)

// IndexTemplate is the template name of the website page.
const IndexTemplate = "index.html"

// BotTemplates lists the per-role artifact templates in their on-disk
// order inside a bot folder.
var BotTemplates = []string{
	"main.py",
	"logic.py",
	"config.py",
	"Dockerfile",
	"requirements.txt",
	"render.yaml",
}

var botTemplateSources = map[string]string{
	"main.py":          botMainTemplate,
	"logic.py":         botLogicTemplate,
	"config.py":        botConfigTemplate,
	"Dockerfile":       dockerfileTemplate,
	"requirements.txt": requirementsTemplate,
	"render.yaml":      renderYAMLTemplate,
}

type Renderer struct {
	page *htmltemplate.Template
	bot  *texttemplate.Template
}

// pageView augments the render context with the markdown-expanded copy
// fragments for the website page.
type pageView struct {
	types.RenderContext
	IntroHTML   htmltemplate.HTML
	RoadmapHTML htmltemplate.HTML
}

// botView augments the render context with the role label and the derived
// per-role service name.
type botView struct {
	types.RenderContext
	Role        string
	ServiceName string
}

func NewRenderer() (*Renderer, error) {
	page, err := htmltemplate.New(IndexTemplate).Parse(indexHTMLTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", IndexTemplate, err)
	}

	bot := texttemplate.New("bot")
	for name, src := range botTemplateSources {
		if _, err := bot.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
	}

	return &Renderer{page: page, bot: bot}, nil
}

// RenderIndex produces the website page. The intro and roadmap copy is
// treated as markdown; its raw HTML is escaped before conversion so
// model-written or user-supplied markup never reaches the page unescaped.
func (r *Renderer) RenderIndex(ctx types.RenderContext) (string, error) {
	intro, err := markdownFragment(ctx.Intro)
	if err != nil {
		return "", fmt.Errorf("render intro copy: %w", err)
	}
	roadmap, err := markdownFragment(ctx.Roadmap)
	if err != nil {
		return "", fmt.Errorf("render roadmap copy: %w", err)
	}

	var buf bytes.Buffer
	view := pageView{RenderContext: ctx, IntroHTML: intro, RoadmapHTML: roadmap}
	if err := r.page.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute %s template: %w", IndexTemplate, err)
	}
	return buf.String(), nil
}

// RenderBot produces one bot artifact for the given role. The role
// substitutes into the deployment service name so the two skeletons never
// collide.
func (r *Renderer) RenderBot(name, role string, ctx types.RenderContext) (string, error) {
	tmpl := r.bot.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("unknown bot template %q", name)
	}

	var buf bytes.Buffer
	view := botView{
		RenderContext: ctx,
		Role:          role,
		ServiceName:   fmt.Sprintf("%s-%s", Slug(ctx.CoinName), role),
	}
	if err := tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute %s template for role %s: %w", name, role, err)
	}
	return buf.String(), nil
}

// Slug derives the canonical URL slug from a coin name: lowercase, spaces
// to hyphens, everything else passed through. Deterministic and total over
// printable input.
func Slug(coinName string) string {
	return strings.ReplaceAll(strings.ToLower(coinName), " ", "-")
}

func markdownFragment(copyText string) (htmltemplate.HTML, error) {
	// Escape first: goldmark's default renderer drops raw HTML instead of
	// escaping it, and the page must keep narrative-derived markup visible
	// in escaped form.
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(html.EscapeString(copyText)), &buf); err != nil {
		return "", err
	}
	return htmltemplate.HTML(buf.String()), nil
}
