package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptContainsFieldsVerbatim(t *testing.T) {
	for _, pt := range ProjectTypes {
		for _, lang := range Languages {
			name := `My "quoted" app 🚀`
			prompt := BuildPrompt(name, pt, lang)
			assert.Contains(t, prompt, name)
			assert.Contains(t, prompt, string(pt))
			assert.Contains(t, prompt, string(lang))
		}
	}
}

func TestBuildPromptTemplate(t *testing.T) {
	assert.Equal(t,
		`I would like to create a website project named "Shop" using the Go programming language. Generate detailed steps for how to get started on this project.`,
		BuildPrompt("Shop", ProjectTypeWebsite, "Go"),
	)
}

func TestFormStateComplete(t *testing.T) {
	full := FormState{ProjectName: "x", ProjectType: ProjectTypeApplication, Language: LanguageRuby}
	assert.True(t, full.Complete())

	for _, s := range []FormState{
		{ProjectType: ProjectTypeApplication, Language: LanguageRuby},
		{ProjectName: "x", Language: LanguageRuby},
		{ProjectName: "x", ProjectType: ProjectTypeApplication},
	} {
		assert.False(t, s.Complete())
	}
}

func TestOptionCounts(t *testing.T) {
	assert.Len(t, ProjectTypes, 2)
	assert.Len(t, Languages, 8)
}
