package assetview

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func missingLaptop() Record {
	assets := DemoAssets()
	return assets[1] // LPT-002, Mike Chen, Missing, 1500
}

func TestAnswerNoSelection(t *testing.T) {
	got := Answer(nil, "where is my laptop?")
	assert.Equal(t, "Please select an asset from the table to get specific information.", got)

	// Selection gates everything, including empty queries
	assert.Equal(t, got, Answer(nil, ""))
}

func TestAnswerOwner(t *testing.T) {
	a := missingLaptop()
	got := Answer(&a, "who is the owner?")
	assert.Equal(t, "This asset is owned by Mike Chen.", got)
}

func TestAnswerLocationAndLastSeen(t *testing.T) {
	a := missingLaptop()

	want := "Asset LPT-002 was last seen at Building B, Floor 1 on 2023-12-20."
	assert.Equal(t, want, Answer(&a, "what is its location?"))
	assert.Equal(t, want, Answer(&a, "when was it last seen?"))

	// Location/last-seen precedes the owner rule even when both match
	assert.Equal(t, want, Answer(&a, "owner last seen?"))
}

func TestAnswerLastSeenTrimsTimestamp(t *testing.T) {
	a := missingLaptop()
	a.LastSeen = "2023-12-20T00:00:00Z"

	got := Answer(&a, "when was it last seen?")
	assert.Equal(t, "Asset LPT-002 was last seen at Building B, Floor 1 on 2023-12-20.", got)
}

func TestAnswerEmailDraftOffer(t *testing.T) {
	a := missingLaptop()
	got := Answer(&a, "can you draft an email?")
	assert.Equal(t, "I can help draft a recovery email. Would you like me to create a personalized outreach message for Mike Chen?", got)
}

func TestAnswerDisposition(t *testing.T) {
	a := missingLaptop()
	got := Answer(&a, "suggest a disposition")
	assert.Contains(t, got, "active recovery")
	assert.Contains(t, got, "1500")
	assert.NotContains(t, got, "1,500")

	// At or below 1000 the advice flips to write-off consideration
	low := DemoAssets()[2] // MON-001, 400
	got = Answer(&low, "suggest a disposition")
	assert.Contains(t, got, "write-off")
	assert.Contains(t, got, "400")
}

func TestAnswerDefaultSummary(t *testing.T) {
	a := missingLaptop()
	got := Answer(&a, "tell me about this thing")
	assert.Equal(t, "For asset LPT-002: Status is Missing, valued at $1500. What would you like to know?", got)
}

func TestAnswerCaseInsensitive(t *testing.T) {
	a := missingLaptop()
	assert.Equal(t, "This asset is owned by Mike Chen.", Answer(&a, "OWNER?"))
}

func TestDraftLocalEmail(t *testing.T) {
	now := time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC) // 30 days after 2023-12-20
	a := missingLaptop()

	draft := DraftLocalEmail(a, now)

	assert.Equal(t, "Mike Chen", draft.To)
	assert.Equal(t, "Action Required: Asset LPT-002 Recovery", draft.Subject)
	assert.Contains(t, draft.Body, "Dear Mike Chen,")
	assert.Contains(t, draft.Body, "asset LPT-002 (MacBook Pro)")
	assert.Contains(t, draft.Body, "last seen at Building B, Floor 1")
	assert.Contains(t, draft.Body, fmt.Sprintf("approximately %d days ago", 30))
	assert.Contains(t, draft.Body, "valued at $1,500")
	assert.Contains(t, draft.Body, "Best regards,\nAsset Recovery Team")
}

func TestDraftLocalEmailModelFallback(t *testing.T) {
	a := missingLaptop()
	a.Model = ""

	draft := DraftLocalEmail(a, time.Now())
	assert.Contains(t, draft.Body, "(device)")
}

func TestAmountFormatting(t *testing.T) {
	assert.Equal(t, "1500", bareAmount(1500))
	assert.Equal(t, "999.5", bareAmount(999.5))
	assert.Equal(t, "0", bareAmount(0))

	assert.Equal(t, "1,500", groupAmount(1500))
	assert.Equal(t, "400", groupAmount(400))
	assert.Equal(t, "1,234,567.89", groupAmount(1234567.89))
	assert.Equal(t, "-1,500", groupAmount(-1500))
}
