package source

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Готовит тело записи: markdown рендерится в XHTML,
// из html страницы вытаскивается сама статья
type Renderer struct {
	markdown goldmark.Markdown
	// nil если санитайзер выключен
	policy *bluemonday.Policy
}

func NewRenderer(sanitize bool) *Renderer {
	r := &Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			// Atom ждет XHTML, поэтому <br /> а не <br>
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
	}

	if sanitize {
		r.policy = bluemonday.UGCPolicy()
	}

	return r
}

// Рендер файла по расширению. pageURL нужен readability,
// чтобы сделать относительные ссылки абсолютными
func (r *Renderer) RenderFile(path, pageURL string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return r.Markdown(data)
	case ".html", ".htm":
		return r.Article(data, pageURL)
	default:
		return r.Inline(string(data))
	}
}

// HTML фрагмент, написанный руками (в манифесте или в файле)
func (r *Renderer) Inline(content string) (string, error) {
	return ToXHTML(r.Sanitize(content))
}

func (r *Renderer) Markdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}

	return ToXHTML(r.Sanitize(buf.String()))
}

// Из полной html страницы оставляем только текст статьи с разметкой
func (r *Renderer) Article(page []byte, pageURL string) (string, error) {
	var base *url.URL
	if u, err := url.Parse(pageURL); err == nil && u.IsAbs() {
		base = u
	}

	article, err := readability.FromReader(bytes.NewReader(page), base)
	if err != nil {
		return "", fmt.Errorf("extract article: %w", err)
	}

	return ToXHTML(r.Sanitize(article.Content))
}

func (r *Renderer) Sanitize(content string) string {
	if r.policy == nil {
		return content
	}

	return r.policy.Sanitize(content)
}

// Разбирает фрагмент как содержимое <body> и собирает обратно.
// На выходе экранированный текст и закрытые теги (<br/>), то есть то,
// что можно вставить в type="xhtml" без поломки документа.
// Содержимое script и style html парсер оставляет как есть
func ToXHTML(fragment string) (string, error) {
	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := nethtml.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf bytes.Buffer
	for _, node := range nodes {
		if err := nethtml.Render(&buf, node); err != nil {
			return "", fmt.Errorf("render xhtml: %w", err)
		}
	}

	return buf.String(), nil
}
