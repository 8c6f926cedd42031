package assetview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DraftLocalEmail builds a recovery email from the record alone, without any
// remote call. It is the offline counterpart of the remote draft operation
// and always produces a structurally complete email.
func DraftLocalEmail(a Record, now time.Time) EmailDraft {
	model := a.Model
	if model == "" {
		model = "device"
	}
	days := DaysSince(a.LastSeen, now)

	body := fmt.Sprintf(`Dear %s,

I hope this message finds you well. I'm reaching out regarding company asset %s (%s) that was last seen at %s approximately %d days ago.

Our records indicate this asset, valued at $%s, has not been checked in recently. To ensure proper asset management and security compliance, we kindly request:

1. Confirmation of the asset's current location
2. If the asset is no longer in use, arrangement for its return to IT services
3. Any updates regarding the asset's status

Please respond within 5 business days. If you need assistance with return logistics or have questions about this asset, feel free to reach out.

Thank you for your cooperation in maintaining our asset inventory.

Best regards,
Asset Recovery Team`,
		a.Owner, a.AssetID, model, a.Location, days, groupAmount(a.Value))

	return EmailDraft{
		To:      a.Owner,
		Subject: fmt.Sprintf("Action Required: Asset %s Recovery", a.AssetID),
		Body:    body,
	}
}

// selectAssetPrompt is returned whenever no asset is selected, regardless of
// the query.
const selectAssetPrompt = "Please select an asset from the table to get specific information."

// chatRule pairs a keyword predicate with a response builder. Rules are
// evaluated in order; the first match wins.
type chatRule struct {
	keywords []string
	respond  func(a Record) string
}

// chatRules is the precedence-ordered rule table of the assistant.
var chatRules = []chatRule{
	{
		keywords: []string{"last seen", "location"},
		respond: func(a Record) string {
			return fmt.Sprintf("Asset %s was last seen at %s on %s.", a.AssetID, a.Location, dateOnly(a.LastSeen))
		},
	},
	{
		keywords: []string{"owner"},
		respond: func(a Record) string {
			return fmt.Sprintf("This asset is owned by %s.", a.Owner)
		},
	},
	{
		keywords: []string{"email", "draft"},
		respond: func(a Record) string {
			return fmt.Sprintf("I can help draft a recovery email. Would you like me to create a personalized outreach message for %s?", a.Owner)
		},
	},
	{
		keywords: []string{"disposition", "suggest"},
		respond: func(a Record) string {
			if a.Value > 1000 {
				return fmt.Sprintf("I recommend active recovery efforts given the high value ($%s). Initiate immediate outreach to the owner.", bareAmount(a.Value))
			}
			return fmt.Sprintf("Consider marking as write-off if recovery costs exceed asset value ($%s).", bareAmount(a.Value))
		},
	},
}

func (r chatRule) matches(loweredQuery string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(loweredQuery, kw) {
			return true
		}
	}
	return false
}

// Answer replies to a chat query about the selected asset. A nil selection
// always yields the select-an-asset prompt. Otherwise the first matching rule
// answers; with no match, a status-and-value summary does.
func Answer(selected *Record, query string) string {
	if selected == nil {
		return selectAssetPrompt
	}
	q := strings.ToLower(query)
	for _, rule := range chatRules {
		if rule.matches(q) {
			return rule.respond(*selected)
		}
	}
	return fmt.Sprintf("For asset %s: Status is %s, valued at $%s. What would you like to know?",
		selected.AssetID, selected.Status, bareAmount(selected.Value))
}

// dateOnly trims an RFC3339 timestamp down to its date part. Server payloads
// carry full timestamps; the assistant only ever speaks in dates.
func dateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}

// bareAmount formats a value without grouping: 1500 -> "1500".
func bareAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// groupAmount formats a value with thousands separators: 1500 -> "1,500".
func groupAmount(v float64) string {
	s := bareAmount(v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
