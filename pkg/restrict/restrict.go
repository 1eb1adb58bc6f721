// Package restrict implements the path restriction policy consulted
// during validation: patches may not escape the target directory, may
// not touch executable file types, and may not target protected
// system locations. A manifest with allow_restricted set bypasses the
// whole policy; that flag is for patches the user explicitly trusts.
package restrict

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/seam/pkg/config"
	"github.com/arthur-debert/seam/pkg/logging"
	"github.com/arthur-debert/seam/pkg/types"
)

// Violation describes one rejected path.
type Violation struct {
	File   string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.File, v.Reason)
}

// Policy holds the restriction lists. Zero value blocks nothing; use
// New with the configured restrictions.
type Policy struct {
	blockedExtensions []string
	protectedPaths    []string
}

// New builds a Policy from configuration.
func New(r config.Restrictions) *Policy {
	return &Policy{
		blockedExtensions: r.BlockedExtensions,
		protectedPaths:    r.ProtectedPaths,
	}
}

// Check inspects a single manifest filename against a target
// directory. It returns nil when the path is allowed.
func (p *Policy) Check(file, targetDir string) *Violation {
	if v := p.checkTraversal(file); v != nil {
		return v
	}
	if v := p.checkExtension(file); v != nil {
		return v
	}
	return p.checkProtected(file, targetDir)
}

// CheckManifest runs Check over every entry. It honors the manifest's
// allow_restricted escape hatch and collects all violations instead
// of stopping at the first, so the user sees the full list at once.
func (p *Policy) CheckManifest(m *types.Manifest, targetDir string) []Violation {
	if m.AllowRestricted {
		logger := logging.GetLogger("restrict")
		logger.Warn().
			Str("targetDir", targetDir).
			Msg("Manifest allows restricted paths, policy bypassed")
		return nil
	}

	var violations []Violation
	for _, entry := range m.Entries {
		if v := p.Check(entry.File, targetDir); v != nil {
			violations = append(violations, *v)
		}
	}
	return violations
}

func (p *Policy) checkTraversal(file string) *Violation {
	for _, component := range strings.Split(filepath.ToSlash(file), "/") {
		if component == ".." {
			return &Violation{File: file, Reason: "path traversal not allowed"}
		}
	}
	// The manifest namespace is flat: a separator means the entry was
	// not produced by the categorizer.
	if strings.ContainsAny(file, `/\`) {
		return &Violation{File: file, Reason: "path separators not allowed in entry names"}
	}
	return nil
}

func (p *Policy) checkExtension(file string) *Violation {
	lower := strings.ToLower(file)
	for _, ext := range p.blockedExtensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return &Violation{File: file, Reason: fmt.Sprintf("cannot patch executable files (%s)", ext)}
		}
	}
	return nil
}

func (p *Policy) checkProtected(file, targetDir string) *Violation {
	abs, err := filepath.Abs(targetDir)
	if err != nil {
		return &Violation{File: file, Reason: fmt.Sprintf("cannot resolve target directory: %v", err)}
	}
	for _, prefix := range p.protectedPaths {
		if abs == prefix || strings.HasPrefix(abs, prefix+string(filepath.Separator)) {
			return &Violation{File: file, Reason: fmt.Sprintf("target directory is under protected path %s", prefix)}
		}
	}
	return nil
}
