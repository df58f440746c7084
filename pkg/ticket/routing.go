package ticket

import (
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/form"
)

// RoutingTable maps a form action to the jira project receiving the issue.
// It is built once and only read afterwards.
type RoutingTable struct {
	projects       map[form.Action]string
	defaultProject string
}

func NewRoutingTable(cfg *config.Jira) *RoutingTable {
	def := cfg.DefaultProjectID
	if def == "" {
		def = cfg.ContentProjectID
	}
	workspace := cfg.WorkspaceProjectID
	if workspace == "" {
		workspace = def
	}

	projects := map[form.Action]string{}
	for _, a := range form.Actions {
		if a.IsWorkspace() {
			projects[a] = workspace
		} else {
			projects[a] = cfg.ContentProjectID
		}
	}
	return &RoutingTable{projects: projects, defaultProject: def}
}

// Project returns the project of the action, or the default project when the
// action is empty or unknown.
func (r *RoutingTable) Project(action form.Action) string {
	if p, ok := r.projects[action]; ok && p != "" {
		return p
	}
	return r.defaultProject
}
