// Package deps reports availability of the external binaries pagepress can
// call out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"pagepress/internal/config"
)

// Requirement defines an external dependency.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the external binaries for the configured raster tool.
// The preferred tool is required; the other is listed as an optional fallback.
func Requirements(cfg *config.Config) []Requirement {
	gs := Requirement{
		Name:        "Ghostscript",
		Command:     cfg.GhostscriptBinary(),
		Description: "rasterizes PDF pages for size fitting",
	}
	mutool := Requirement{
		Name:        "MuPDF tools",
		Command:     cfg.MuToolBinary(),
		Description: "alternate PDF page rasterizer",
	}
	if cfg.Raster.Tool == "mutool" {
		gs.Optional = true
		gs.Description = "alternate PDF page rasterizer"
		mutool.Description = "rasterizes PDF pages for size fitting"
		return []Requirement{mutool, gs}
	}
	mutool.Optional = true
	return []Requirement{gs, mutool}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
