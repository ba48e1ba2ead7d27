package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/gaitcgm/pkg/domain"
	"github.com/aretw0/gaitcgm/pkg/registry"
)

// GraphOverlay contains run state to visualize on the graph.
type GraphOverlay struct {
	CompletedSteps []string
	FailedStep     string
}

// GenerateMermaid produces a Mermaid flowchart of a plan. Axis steps and
// angle steps are grouped in one subgraph each, in execution order. Shapes:
// - Axis step: [Rectangle]
// - Angle step: [/Parallelogram/]
// - Step with several outputs: [[Subroutine]]
// Edges run from the producer of an Axis or Angle param to the step reading
// it, labelled with the output name. References to outputs nobody produces
// point at a dashed "missing" node.
func GenerateMermaid(plan *registry.Plan, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, ns := range []domain.Namespace{domain.NamespaceAxis, domain.NamespaceAngle} {
		steps := plan.Steps(ns)
		if len(steps) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    subgraph %s\n", ns)
		for _, s := range steps {
			opener, closer := "[", "]"
			switch {
			case len(s.Outputs) > 1:
				opener, closer = "[[", "]]"
			case ns == domain.NamespaceAngle:
				opener, closer = "[/", "/]"
			}
			label := s.Name + "<br/>" + strings.Join(s.Outputs, ", ")
			fmt.Fprintf(&sb, "        %s%s\"%s\"%s\n", sanitizeMermaidID(s.Name), opener, label, closer)
		}
		sb.WriteString("    end\n")
	}

	missing := map[string]bool{}
	for _, ns := range []domain.Namespace{domain.NamespaceAxis, domain.NamespaceAngle} {
		for _, s := range plan.Steps(ns) {
			to := sanitizeMermaidID(s.Name)
			for _, p := range s.Params {
				var target domain.Namespace
				switch p.Kind {
				case domain.KindAxis:
					target = domain.NamespaceAxis
				case domain.KindAngle:
					target = domain.NamespaceAngle
				default:
					continue
				}
				producer, ok := plan.Producer(target, p.Name)
				if !ok {
					id := "missing_" + sanitizeMermaidID(string(target)+"_"+p.Name)
					if !missing[id] {
						missing[id] = true
						fmt.Fprintf(&sb, "    %s(\"%s %s?\")\n", id, target, p.Name)
						sb.WriteString("    style " + id + " stroke-dasharray: 5 5\n")
					}
					fmt.Fprintf(&sb, "    %s -.-> %s\n", id, to)
					continue
				}
				fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", sanitizeMermaidID(producer), p.Name, to)
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds.
		sb.WriteString("    classDef completed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef failed fill:#ffcdd2,stroke:#b71c1c,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.CompletedSteps {
			id := sanitizeMermaidID(name)
			if !seen[id] && id != "" {
				seen[id] = true
				fmt.Fprintf(&sb, "    class %s completed;\n", id)
			}
		}
		if overlay.FailedStep != "" {
			fmt.Fprintf(&sb, "    class %s failed;\n", sanitizeMermaidID(overlay.FailedStep))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
