// Package repourl normalizes heterogeneous GitHub repository references into
// a canonical identity.
package repourl

import (
	"fmt"
	"regexp"
)

// Reference is the canonical identity of a repository. Owner and Repo are
// case-preserving as entered by the user.
type Reference struct {
	Owner string
	Repo  string
}

// Key returns the canonical "owner/repo" cache key.
func (r Reference) Key() string {
	return r.Owner + "/" + r.Repo
}

// CloneURL returns the canonical HTTPS clone URL. Every recognized input form
// is upgraded to this form.
func (r Reference) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", r.Owner, r.Repo)
}

// Recognized input shapes, tried in order. The web and SSH forms capture the
// repo loosely so malformed names parse and are then rejected by Validate.
var (
	webRe       = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/(.+?)(?:\.git)?/?$`)
	sshRe       = regexp.MustCompile(`^git@(?:www\.)?github\.com:([^/]+)/(.+?)(?:\.git)?$`)
	shorthandRe = regexp.MustCompile(`^([A-Za-z0-9_-]+)/([A-Za-z0-9._-]+)$`)
)

// Name legality, checked independently of parsing. GitHub owners are 1-39
// alphanumeric characters with internal hyphens only.
var (
	ownerNameRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,37}[A-Za-z0-9])?$`)
	repoNameRe  = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// Parse attempts to normalize a raw reference string. It returns the
// canonical identity and true, or a zero Reference and false when the input
// matches none of the recognized shapes. Callers must check ok before using
// the result.
func Parse(raw string) (Reference, bool) {
	for _, re := range []*regexp.Regexp{webRe, sshRe, shorthandRe} {
		if m := re.FindStringSubmatch(raw); m != nil {
			return Reference{Owner: m[1], Repo: m[2]}, true
		}
	}
	return Reference{}, false
}

// Validate independently checks owner/repo name legality. A reference can
// parse successfully yet fail validation (e.g., an owner starting with a
// hyphen); callers must reject such references before any filesystem or
// network action.
func Validate(ref Reference) error {
	if !ownerNameRe.MatchString(ref.Owner) {
		return fmt.Errorf("invalid owner name %q: must be 1-39 alphanumeric characters with internal hyphens", ref.Owner)
	}
	if !repoNameRe.MatchString(ref.Repo) {
		return fmt.Errorf("invalid repository name %q: must contain only letters, digits, '.', '_' or '-'", ref.Repo)
	}
	return nil
}

// SupportedForms describes the recognized reference shapes for error detail.
const SupportedForms = "owner/repo, https://github.com/owner/repo[.git], git@github.com:owner/repo[.git]"
