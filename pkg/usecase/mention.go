package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
)

var (
	// @{fullName,login,displayLogin,email}
	structuredMentionPattern = regexp.MustCompile(`@\{([^,]+),([^,]+),([^,]+),([^}]+)\}`)
	// @login
	bareMentionPattern = regexp.MustCompile(`@([a-zA-Z0-9._-]+)`)
)

// ExtractMentions returns the users mentioned in text, each login at most
// once and in order of first appearance.
//
// Structured mentions carry their display data inline and are trusted as is.
// Bare mentions in the remaining text are resolved through directory; logins
// that cannot be resolved are skipped. A nil directory disables bare mention
// resolution.
func ExtractMentions(ctx context.Context, text string, directory interfaces.UserDirectory) []model.UserRef {
	if text == "" {
		return nil
	}

	var users []model.UserRef
	seen := make(map[string]struct{})

	var remaining strings.Builder
	last := 0
	for _, m := range structuredMentionPattern.FindAllStringSubmatchIndex(text, -1) {
		remaining.WriteString(text[last:m[0]])
		remaining.WriteByte(' ')
		last = m[1]

		fullName := strings.TrimSpace(text[m[2]:m[3]])
		login := strings.TrimSpace(text[m[4]:m[5]])
		email := strings.TrimSpace(text[m[8]:m[9]])
		if login == "" {
			continue
		}
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}
		users = append(users, *model.NewUserRef(fullName, login, email))
	}
	remaining.WriteString(text[last:])

	logger := ctxlog.From(ctx)
	for _, m := range bareMentionPattern.FindAllStringSubmatch(remaining.String(), -1) {
		login := m[1]
		if _, ok := seen[login]; ok {
			continue
		}
		seen[login] = struct{}{}

		if directory == nil {
			continue
		}
		user, found := directory.FindByLogin(ctx, login)
		if !found || user == nil {
			logger.Debug("Mentioned user not resolved", "login", login)
			continue
		}
		users = append(users, *model.Sanitize(user))
	}

	return users
}
