package snippet

import (
	"regexp"
	"strings"
)

// The rewrite pass sanitizes snippets that look like snipmd invocations so
// the docs show a canonical form: no local config flags, no shell quoting,
// placeholder variables spelled the same way everywhere, and real filesystem
// paths collapsed to a generic path/to form. This is a fixed special case
// for one tool's command convention, not a general templating mechanism.
const (
	toolName       = "snipmd"
	sentinelName   = "config"
	sentinelToken  = "${config}"
	sentinelValue  = "nil"
	configFlag     = "--config"
	flagRemoved    = "__FLAG_REMOVED__"
	depsDirMention = "node_modules/"
	pathPrefix     = "path/to/"
)

var (
	triggerRe     = regexp.MustCompile(toolName + `|` + regexp.QuoteMeta(sentinelToken))
	configFlagRe  = regexp.MustCompile(`\s*` + configFlag + `\s+\S+`)
	placeholderRe = regexp.MustCompile(`\$\{(\w+)\}`)
	tokenRe       = regexp.MustCompile(`\S+`)
)

// Rewrite sanitizes command-style text. Input that contains no trigger token
// (the snipmd tool name or the ${config} placeholder) is returned unchanged.
// Rewrite is total: it never fails and always returns a string.
func Rewrite(text string) string {
	loc := triggerRe.FindStringIndex(text)
	if loc == nil {
		return text
	}

	// Drop any prompt or narrative prefix before the command itself.
	text = text[loc[0]:]

	text = strings.ReplaceAll(text, sentinelToken, sentinelValue)
	text = configFlagRe.ReplaceAllString(text, " "+flagRemoved)
	text = strings.ReplaceAll(text, "'", "")
	text = strings.ReplaceAll(text, "`", "")

	text = placeholderRe.ReplaceAllStringFunc(text, func(tok string) string {
		name := tok[2 : len(tok)-1]
		if name == sentinelName {
			return sentinelValue
		}
		return strings.ToUpper(name)
	})

	text = tokenRe.ReplaceAllStringFunc(text, normalizePath)

	text = strings.ReplaceAll(text, " "+flagRemoved, "")
	text = strings.ReplaceAll(text, flagRemoved, "")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ";")
	text = strings.ReplaceAll(text, depsDirMention, "")

	return text
}

// normalizePath collapses a token containing a path separator to the generic
// path/to form, keeping only the final segment. Separator-free tokens pass
// through untouched, so the replacement is idempotent.
func normalizePath(tok string) string {
	idx := strings.LastIndex(tok, "/")
	if idx == -1 {
		return tok
	}
	return pathPrefix + tok[idx+1:]
}
