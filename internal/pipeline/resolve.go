package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var jobNumberSpec = regexp.MustCompile(`^(?:job)?(\d+)$`)

// ResolveJobName maps a user-supplied job reference to a job name. It accepts
// the exact name ("Refine3D/job004/"), the name without its trailing slash,
// a job token ("job004", "job4") or a bare number ("4").
func ResolveJobName(spec string, p *Pipeline) (string, bool) {
	spec = strings.TrimSpace(spec)
	if _, ok := p.Jobs[spec]; ok {
		return spec, true
	}
	if _, ok := p.Jobs[spec+"/"]; ok {
		return spec + "/", true
	}

	m := jobNumberSpec.FindStringSubmatch(spec)
	if m == nil {
		return "", false
	}
	want, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	for _, name := range p.Names() {
		if n, ok := p.Jobs[name].JobNumber(); ok && n == want {
			return name, true
		}
	}
	return "", false
}
