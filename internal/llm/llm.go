// Package llm drafts recovery emails and answers chat queries about assets.
//
// When an Ollama model is configured the text is generated through
// langchaingo; otherwise, or whenever generation fails, a deterministic
// template takes over so the endpoints stay usable without a model server.
package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"reclaimit-api/internal/models"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Options configures the drafter.
type Options struct {
	Model     string // Ollama model name; empty disables generation
	ServerURL string
	Timeout   time.Duration
}

// Drafter generates recovery emails and chat answers.
type Drafter struct {
	model   llms.Model
	timeout time.Duration
}

// NewDrafter creates a drafter. A missing or unreachable model is not an
// error; the drafter degrades to its template fallback.
func NewDrafter(opts Options) *Drafter {
	d := &Drafter{timeout: opts.Timeout}
	if d.timeout <= 0 {
		d.timeout = 30 * time.Second
	}
	if opts.Model == "" {
		return d
	}

	model, err := ollama.New(
		ollama.WithModel(opts.Model),
		ollama.WithServerURL(opts.ServerURL),
	)
	if err != nil {
		log.Printf("llm: ollama init failed, using template fallback: %v", err)
		return d
	}
	d.model = model
	return d
}

// generate runs a single prompt through the configured model.
func (d *Drafter) generate(ctx context.Context, prompt string) (string, error) {
	if d.model == nil {
		return "", fmt.Errorf("no model configured")
	}
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	out, err := llms.GenerateFromSinglePrompt(ctx, d.model, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DraftEmail produces a recovery email for the asset. The subject is always
// templated; the body comes from the model when available.
func (d *Drafter) DraftEmail(ctx context.Context, asset models.Asset) models.EmailDraft {
	displayName := strOr(asset.Name, asset.AssetID)
	subject := fmt.Sprintf("Regarding your company asset: %s", displayName)

	prompt := fmt.Sprintf(
		"Draft a polite, concise recovery email to %s (%s) about asset %s (%s) last seen on %s. "+
			"Include a suggested next step and a friendly closing.",
		strOr(asset.Owner, "the owner"), strOr(asset.OwnerEmail, "unknown email"),
		asset.AssetID, strOr(asset.Name, ""), lastSeenOr(asset.LastSeen, "unknown"))

	body, err := d.generate(ctx, prompt)
	if err != nil {
		if d.model != nil {
			log.Printf("llm: email generation failed, using fallback: %v", err)
		}
		body = fallbackEmailBody(asset)
	}

	return models.EmailDraft{
		To:      strOr(asset.OwnerEmail, ""),
		Subject: subject,
		Body:    body,
	}
}

// AnswerChat answers a query about the given context assets.
func (d *Drafter) AnswerChat(ctx context.Context, query string, assets []models.Asset) string {
	prompt := fmt.Sprintf(
		"You are an assistant that helps with IT asset recovery. "+
			"Use only the provided context below to answer the user's question.\n\n"+
			"Context:\n%s\n\nQuestion: %s",
		ContextForAssets(assets), query)

	answer, err := d.generate(ctx, prompt)
	if err == nil {
		return answer
	}
	if d.model != nil {
		log.Printf("llm: chat generation failed, using heuristic fallback: %v", err)
	}
	return fallbackChatAnswer(query, assets)
}

// ContextForAssets builds a compact context block from the assets.
func ContextForAssets(assets []models.Asset) string {
	parts := make([]string, 0, len(assets))
	for _, a := range assets {
		parts = append(parts, fmt.Sprintf(
			"asset_id: %s\nname: %s\nowner: %s\nowner_email: %s\nlast_seen: %s\nstatus: %s\nvalue_estimate: %s\ndisposition: %s\n",
			a.AssetID, strOr(a.Name, ""), strOr(a.Owner, ""), strOr(a.OwnerEmail, ""),
			lastSeenOr(a.LastSeen, ""), a.Status, floatOr(a.ValueEstimate, ""),
			strOr(a.DispositionSuggestion, "")))
	}
	return strings.Join(parts, "\n---\n")
}

// fallbackEmailBody is the deterministic body used when no model answers.
func fallbackEmailBody(asset models.Asset) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Our records show that the device %s was last seen at %s. "+
			"If you still have it, please confirm. If not, please reply with any info you have "+
			"about its whereabouts so we can take the next steps to recover it.\n\n"+
			"Next step: reply to this email or visit the asset portal to confirm its status.\n\n"+
			"Thanks,\nAsset Recovery Team",
		strOr(asset.Owner, "there"),
		strOr(asset.Name, asset.AssetID),
		lastSeenOr(asset.LastSeen, "an unknown time"))
}

// fallbackChatAnswer applies simple keyword rules when no model answers.
func fallbackChatAnswer(query string, assets []models.Asset) string {
	lowered := strings.ToLower(query)
	var first *models.Asset
	if len(assets) > 0 {
		first = &assets[0]
	}

	switch {
	case strings.Contains(lowered, "owner"):
		owner := "unknown"
		if first != nil && first.Owner != nil {
			owner = *first.Owner
		}
		return "Owner: Based on the context, the owner appears to be " + owner
	case strings.Contains(lowered, "last seen") || strings.Contains(lowered, "last-seen"):
		seen := "unknown"
		if first != nil && first.LastSeen != nil {
			seen = first.LastSeen.Format("2006-01-02")
		}
		return "Last seen: " + seen
	case strings.Contains(lowered, "disposition"):
		return "Suggested disposition: Attempt outreach; if no response in 7 days, escalate to IT asset disposal."
	}
	return "I couldn't find a direct answer in the context. Based on the available asset data, consider outreach and manual verification."
}

func strOr(p *string, def string) string {
	if p != nil && *p != "" {
		return *p
	}
	return def
}

func lastSeenOr(t *time.Time, def string) string {
	if t == nil {
		return def
	}
	return t.Format("2006-01-02")
}

func floatOr(p *float64, def string) string {
	if p == nil {
		return def
	}
	return fmt.Sprintf("%.2f", *p)
}
