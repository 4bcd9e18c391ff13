// Package search retrieves raw reference text about a health topic from the
// web, restricted to a small allow-list of authoritative medical sites.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Searcher retrieves raw text for a query.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// AuthoritativeDomains are the only sites results may come from.
var AuthoritativeDomains = []string{"nih.gov", "mayoclinic.org", "webmd.com"}

// BuildQuery restricts topic to the authoritative domains using site:
// operators, e.g. "asthma site:nih.gov OR site:mayoclinic.org OR site:webmd.com".
func BuildQuery(topic string) string {
	sites := lo.Map(AuthoritativeDomains, func(d string, _ int) string { return "site:" + d })
	return strings.TrimSpace(topic) + " " + strings.Join(sites, " OR ")
}

const sentinelPrefix = "Error searching for "

// Sentinel renders a search failure as the text stored in place of results.
// Downstream steps recognize it with IsSentinel and skip summarization.
func Sentinel(topic string, err error) string {
	return fmt.Sprintf("%s%s: %v", sentinelPrefix, topic, err)
}

// IsSentinel reports whether text is a search failure marker rather than
// retrieved content.
func IsSentinel(text string) bool {
	return strings.HasPrefix(text, sentinelPrefix)
}

// IsMissingKeySentinel reports whether the failure was a missing API key.
func IsMissingKeySentinel(text string) bool {
	return IsSentinel(text) && strings.Contains(text, ErrMissingAPIKey.Error())
}

// Retrieve runs the allow-listed query for topic. It never fails: any error
// is folded into a sentinel string.
func Retrieve(ctx context.Context, s Searcher, topic string) string {
	if s == nil {
		return Sentinel(topic, ErrNoSearcher)
	}
	text, err := s.Search(ctx, BuildQuery(topic))
	if err != nil {
		return Sentinel(topic, err)
	}
	return text
}

// ErrNoSearcher is used when no search backend is configured.
var ErrNoSearcher = errors.New("no search backend configured")
