package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"CONIC 2025":               "conic-2025",
		"  Semana   Acadêmica  ":   "semana-acadmica",
		"Congresso -- Nacional!":   "congresso-nacional",
		"---":                      "",
		"Edição_Especial de Verão": "edio_especial-de-vero",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestSlugifyFilenameKeepsDots(t *testing.T) {
	assert.Equal(t, "modelo-resumo-v2.docx", SlugifyFilename("Modelo Resumo (v2).docx"))
	assert.Equal(t, "edital.final.pdf", SlugifyFilename("Edital.Final.PDF"))
}
