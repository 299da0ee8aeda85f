package editorconfigchecker

import (
	"context"
	"strings"

	"github.com/smykla-skalski/ecresolve/internal/doctor"
	"github.com/smykla-skalski/ecresolve/pkg/editorconfig"
)

const syntaxCheckName = "Syntax"

// SyntaxChecker reports lines that editors silently skip: unrecognized
// lines, section headers without a closing bracket and preamble keys other
// than root.
type SyntaxChecker struct {
	target Target
}

// NewSyntaxChecker creates a new syntax checker
func NewSyntaxChecker(target Target) *SyntaxChecker {
	return &SyntaxChecker{target: target}
}

// Name returns the name of the check
func (*SyntaxChecker) Name() string {
	return syntaxCheckName
}

// Category returns the category of the check
func (*SyntaxChecker) Category() doctor.Category {
	return doctor.CategoryEditorConfig
}

// Check scans every file of the chain
func (c *SyntaxChecker) Check(ctx context.Context) doctor.CheckResult {
	chain := c.target.Chain()
	if len(chain) == 0 {
		return doctor.Skip(syntaxCheckName, "No configuration files found")
	}

	var details []string

	for _, level := range chain {
		if ctx.Err() != nil {
			return doctor.Skip(syntaxCheckName, "Cancelled")
		}

		path := c.target.FilePath(level)
		details = append(details, syntaxFindings(path, c.target.Source.ReadText(path))...)
	}

	if len(details) > 0 {
		return doctor.FailWarning(syntaxCheckName, plural(len(details), "ignored line")).
			WithDetails(details...)
	}

	return doctor.Pass(syntaxCheckName, plural(len(chain), "file")+" parsed")
}

func syntaxFindings(path, text string) []string {
	var findings []string

	preamble := true

	for _, raw := range rawLines(text) {
		parsed := editorconfig.ParseLine(raw.text)

		switch parsed.Kind {
		case editorconfig.LineSection:
			preamble = false

			if !parsed.Closed {
				findings = append(findings, location(path, raw.num)+
					": section header without closing ']' disables its properties")
			}

		case editorconfig.LineAssignment:
			if preamble && strings.ToLower(parsed.Key) != "root" {
				findings = append(findings, location(path, raw.num)+
					": '"+parsed.Key+"' outside any section is ignored")
			}

		case editorconfig.LineOther:
			findings = append(findings, location(path, raw.num)+": unrecognized line '"+raw.text+"'")
		}
	}

	return findings
}
