package headings

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

func TestCollect(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "Heading tags in document order",
			html: `<h1>Primero</h1><p>texto</p><h2>Segundo</h2><h6>Tercero</h6>`,
			want: []string{"Primero", "Segundo", "Tercero"},
		},
		{
			name: "Title classes, English and Spanish",
			html: `<div class="title">Uno</div><div class="titulo">Dos</div><div class="page-title-main">Tres</div>`,
			want: []string{"Uno", "Dos", "Tres"},
		},
		{
			name: "Span headings excluded",
			html: `<h1>Visible</h1><span class="titulo">Oculto</span>`,
			want: []string{"Visible"},
		},
		{
			name: "Elements nested inside span excluded",
			html: `<span><h2>Dentro de span</h2></span><h2>Fuera</h2>`,
			want: []string{"Fuera"},
		},
		{
			name: "Whitespace-only headings dropped",
			html: `<h1>   </h1><h2>Real</h2>`,
			want: []string{"Real"},
		},
		{
			name: "Trimmed text",
			html: `<h3>
				Cita 4 de agosto
			</h3>`,
			want: []string{"Cita 4 de agosto"},
		},
		{
			name: "No headings",
			html: `<p>solo párrafos</p>`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Collect(docFromString(t, tt.html))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Collect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollect_Fixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/consulate_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	got := Collect(docFromString(t, string(data)))
	want := []string{"Consulado de España", "Aviso", "Cita 4 de agosto", "Información"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Collect() = %v, want %v", got, want)
	}
}

func TestPageMeta(t *testing.T) {
	doc := docFromString(t, `<html><head><title>Solicitud de pasaportes</title></head><body><h1>Noticias</h1><h1>Otro</h1></body></html>`)
	meta := PageMeta(doc)
	if meta.Title != "Solicitud de pasaportes" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.H1 != "Noticias" {
		t.Errorf("H1 = %q, want first h1 only", meta.H1)
	}
}

func TestPageMeta_Fallbacks(t *testing.T) {
	meta := PageMeta(docFromString(t, `<p>sin título</p>`))
	if meta.Title != "No title found" {
		t.Errorf("Title fallback = %q", meta.Title)
	}
	if meta.H1 != "No H1 found" {
		t.Errorf("H1 fallback = %q", meta.H1)
	}
}
