// Package atom описывает элементы Atom 1.0 (RFC 4287) и умеет писать их
// в XML. Билдеры проверяют структурные требования RFC: без id, title и
// updated документ собрать нельзя.
package atom

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/tomakado/containers/set"
)

// Пространство имен корневого feed, оно же зашито в тег Feed.XMLName
const Namespace = "http://www.w3.org/2005/Atom"

var ErrInvalid = errors.New("invalid atom element")

// Типы контента, которые Atom понимает без MIME
var contentTypes = set.New("text", "html", "xhtml")

type Link struct {
	Href string `xml:"href,attr"`
	// Пустой rel в Atom означает alternate
	Rel string `xml:"rel,attr,omitempty"`
}

// Тело записи. xhtml вставляется в документ как есть,
// остальные типы экранируются
type Content struct {
	Type  string
	Value string
}

type xhtmlContent struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",innerxml"`
}

type textContent struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

func (c Content) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if c.Type == "xhtml" {
		return e.EncodeElement(xhtmlContent{Type: c.Type, Value: c.Value}, start)
	}

	return e.EncodeElement(textContent{Type: c.Type, Value: c.Value}, start)
}

// email пишется всегда, даже пустой
type Person struct {
	Name  string `xml:"name"`
	Email string `xml:"email"`
	URI   string `xml:"uri,omitempty"`
}

type Entry struct {
	Title     string   `xml:"title"`
	ID        string   `xml:"id"`
	Published string   `xml:"published,omitempty"`
	Updated   string   `xml:"updated"`
	Authors   []Person `xml:"author"`
	Content   *Content `xml:"content,omitempty"`
}

type Feed struct {
	XMLName xml.Name `xml:"http://www.w3.org/2005/Atom feed"`
	ID      string   `xml:"id"`
	Title   string   `xml:"title"`
	Links   []Link   `xml:"link"`
	Updated string   `xml:"updated"`
	Entries []Entry  `xml:"entry"`
}

// Пишем XML декларацию и компактный документ.
// При ошибке в w уже может лежать часть документа
func (f *Feed) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	if _, err := io.WriteString(cw, xml.Header); err != nil {
		return cw.n, err
	}

	enc := xml.NewEncoder(cw)
	if err := enc.Encode(f); err != nil {
		return cw.n, err
	}

	return cw.n, enc.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
