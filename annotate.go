package statusman

import "strings"

// AnnotateFunc renders probe-specific extra detail for a report row out of
// the probe's config section. An empty return means no annotation.
type AnnotateFunc func(section map[string]interface{}) string

var probeAnnotators = map[string]AnnotateFunc{
	"fping": annotateFping,
}

// RegisterProbeAnnotator registers fn for a probe type. Probe types without
// a registered annotator render without extra detail.
func RegisterProbeAnnotator(probe string, fn AnnotateFunc) {
	probeAnnotators[probe] = fn
}

func probeAnnotation(probe string, section map[string]interface{}) string {
	fn, ok := probeAnnotators[probe]
	if !ok || section == nil {
		return ""
	}

	return fn(section)
}

func annotateFping(section map[string]interface{}) string {
	var parts []string

	if iface := stringField(section, "interface"); iface != "" {
		parts = append(parts, iface)
	}
	if source := stringField(section, "source"); source != "" {
		parts = append(parts, "source="+source)
	}

	return strings.Join(parts, ", ")
}
