package deps_test

import (
	"testing"

	"pagepress/internal/deps"
	"pagepress/internal/testsupport"
)

func TestRequirementsPreferConfiguredTool(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	reqs := deps.Requirements(cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "gs" || reqs[0].Optional {
		t.Fatalf("expected gs required first, got %+v", reqs[0])
	}
	if reqs[1].Command != "mutool" || !reqs[1].Optional {
		t.Fatalf("expected mutool optional, got %+v", reqs[1])
	}

	cfg = testsupport.NewConfig(t, testsupport.WithRasterTool("mutool"))
	reqs = deps.Requirements(cfg)
	if reqs[0].Command != "mutool" || reqs[0].Optional {
		t.Fatalf("expected mutool required first, got %+v", reqs[0])
	}
}

func TestCheckBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries("gs"))

	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected stubbed gs to be available: %+v", statuses[0])
	}

	missing := deps.CheckBinaries([]deps.Requirement{{Name: "Nope", Command: "definitely-not-on-path-xyz"}})
	if missing[0].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if missing[0].Detail == "" {
		t.Fatal("expected detail for missing binary")
	}

	unconfigured := deps.CheckBinaries([]deps.Requirement{{Name: "Blank"}})
	if unconfigured[0].Available || unconfigured[0].Detail != "command not configured" {
		t.Fatalf("unexpected status for unconfigured command: %+v", unconfigured[0])
	}
}
