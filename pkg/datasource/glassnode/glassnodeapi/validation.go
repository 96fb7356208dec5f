package glassnodeapi

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

type IssueCode string

const (
	IssueInvalidType      IssueCode = "invalid_type"
	IssueRequired         IssueCode = "required"
	IssueInvalidEnumValue IssueCode = "invalid_enum_value"
	IssueInvalidString    IssueCode = "invalid_string"
	IssueNotInteger       IssueCode = "not_integer"
	IssueTooSmall         IssueCode = "too_small"
	IssueInvalidDate      IssueCode = "invalid_date"
)

// Issue is one violated field constraint.
type Issue struct {
	// Path locates the field, e.g. "[1].blockchains[0].decimals". Empty for the document root.
	Path    string
	Code    IssueCode
	Message string
}

func (i *Issue) Error() string {
	if i.Path == "" {
		return i.Message
	}

	return i.Path + ": " + i.Message
}

// ValidationError reports every issue found while validating one response document.
type ValidationError struct {
	Schema string
	Issues []*Issue
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Schema)
	sb.WriteString(" validation failed")
	if len(e.Issues) == 1 {
		sb.WriteString(": ")
		sb.WriteString(e.Issues[0].Error())
		return sb.String()
	}

	sb.WriteString(" with ")
	sb.WriteString(strconv.Itoa(len(e.Issues)))
	sb.WriteString(" issues: ")
	for i, issue := range e.Issues {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(issue.Error())
	}

	return sb.String()
}

// Paths returns the paths of all issues, in document order.
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		paths = append(paths, issue.Path)
	}

	return paths
}

// fieldPath renders the location of a value inside a document.
type fieldPath string

const rootPath fieldPath = ""

func (p fieldPath) Field(name string) fieldPath {
	if p == rootPath {
		return fieldPath(name)
	}

	return p + "." + fieldPath(name)
}

func (p fieldPath) Index(i int) fieldPath {
	return p + fieldPath("["+strconv.Itoa(i)+"]")
}

// issueCollector accumulates issues across a whole document.
type issueCollector struct {
	errs error
}

func (c *issueCollector) add(path fieldPath, code IssueCode, format string, args ...interface{}) {
	c.errs = multierr.Append(c.errs, &Issue{
		Path:    string(path),
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *issueCollector) count() int {
	return len(multierr.Errors(c.errs))
}

func (c *issueCollector) result(schema string) error {
	if c.errs == nil {
		return nil
	}

	errs := multierr.Errors(c.errs)
	issues := make([]*Issue, 0, len(errs))
	for _, err := range errs {
		if issue, ok := err.(*Issue); ok {
			issues = append(issues, issue)
		}
	}

	return &ValidationError{Schema: schema, Issues: issues}
}
