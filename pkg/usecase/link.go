package usecase

import (
	"strings"

	"github.com/m-mizutani/herald/pkg/domain/model"
)

// DefaultBaseURL is used when neither the update nor the configuration
// provides a base URL for issue links
const DefaultBaseURL = "http://localhost:8080"

type linker struct {
	baseURL string
}

func newLinker(baseURL string) *linker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &linker{baseURL: strings.TrimRight(baseURL, "/")}
}

// issueURL resolves the link of the updated issue. A permalink wins; relative
// permalinks are rooted at "/".
func (l *linker) issueURL(update *model.IssueUpdate) *string {
	if update.Permalink != "" {
		if strings.HasPrefix(update.Permalink, "http") {
			return ptr(update.Permalink)
		}
		return ptr("/" + strings.TrimLeft(update.Permalink, "/"))
	}

	base := l.baseURL
	if update.BaseURL != "" {
		base = strings.TrimRight(update.BaseURL, "/")
	}

	switch {
	case update.Issue.IDReadable != "":
		return ptr(base + "/issue/" + update.Issue.IDReadable)
	case update.Issue.ID != "":
		return ptr(base + "/issue/" + update.Issue.ID)
	default:
		return nil
	}
}

func (l *linker) commentURL(issueURL *string, comment *model.Comment) *string {
	if comment.URL != "" {
		return ptr(comment.URL)
	}
	if issueURL != nil && comment.ID != "" {
		return ptr(*issueURL + "#comment=" + comment.ID)
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
