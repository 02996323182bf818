package http

import (
	"github.com/launchpad-labs/project-starter/internal/projects"
	"github.com/launchpad-labs/project-starter/internal/projects/domain"
)

// Handler bundles the dependencies for project request endpoints.
type Handler struct {
	forms *projects.Registry
}

func New(forms *projects.Registry) *Handler {
	return &Handler{forms: forms}
}

type submitReq struct {
	ProjectName string             `json:"project_name"`
	ProjectType domain.ProjectType `json:"project_type"`
	Language    domain.Language    `json:"language"`
}

type optionsResp struct {
	ProjectTypes []domain.ProjectType `json:"project_types"`
	Languages    []domain.Language    `json:"languages"`
}
