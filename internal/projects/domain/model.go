package domain

import (
	"errors"
	"fmt"
)

var ErrSubmissionInFlight = errors.New("a project request is already in flight")

// ProjectType is what the user wants to build.
type ProjectType string

const (
	ProjectTypeWebsite     ProjectType = "website"
	ProjectTypeApplication ProjectType = "application"
)

// ProjectTypes lists the selectable project types in display order.
var ProjectTypes = []ProjectType{ProjectTypeWebsite, ProjectTypeApplication}

// Language is one of the fixed programming language choices.
type Language string

const (
	LanguageJavaScript Language = "JavaScript"
	LanguagePython     Language = "Python"
	LanguageJava       Language = "Java"
	LanguageCSharp     Language = "C#"
	LanguageCPP        Language = "C++"
	LanguageRuby       Language = "Ruby"
	LanguagePHP        Language = "PHP"
	LanguageSwift      Language = "Swift"
)

// Languages lists the selectable languages in display order.
var Languages = []Language{
	LanguageJavaScript,
	LanguagePython,
	LanguageJava,
	LanguageCSharp,
	LanguageCPP,
	LanguageRuby,
	LanguagePHP,
	LanguageSwift,
}

// FormState is a snapshot of one project request form.
type FormState struct {
	ProjectName string      `json:"project_name"`
	ProjectType ProjectType `json:"project_type"`
	Language    Language    `json:"language"`
	Loading     bool        `json:"loading"`
	Result      string      `json:"result"`
}

// Complete reports whether every field is non-empty.
func (s FormState) Complete() bool {
	return s.ProjectName != "" && s.ProjectType != "" && s.Language != ""
}

const promptTemplate = `I would like to create a %s project named "%s" using the %s programming language. Generate detailed steps for how to get started on this project.`

// BuildPrompt interpolates the three fields verbatim into the fixed template.
func BuildPrompt(name string, projectType ProjectType, language Language) string {
	return fmt.Sprintf(promptTemplate, projectType, name, language)
}
