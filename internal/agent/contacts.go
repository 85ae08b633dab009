package agent

import (
	"fmt"
	"log"
	"strings"

	"github.com/TEAM-BIRDIE/BeoTT/internal/llm"
)

// ContactResolver maps a free-form recipient phrase to a canonical contact
// name. Three tiers, first match wins: exact name, relationship label, then
// a semantic match by the language model. It returns "" rather than guess.
type ContactResolver struct {
	store DataStore
	llm   LanguageModel
}

func NewContactResolver(store DataStore, lm LanguageModel) *ContactResolver {
	return &ContactResolver{store: store, llm: lm}
}

// Resolve returns the canonical contact name, or "" when nothing matches.
// A non-nil error means the data store failed, not that no match was found.
func (r *ContactResolver) Resolve(memberID int64, input string) (string, error) {
	contacts, err := r.store.ListContacts(memberID)
	if err != nil {
		return "", err
	}
	if len(contacts) == 0 {
		return "", nil
	}

	in := strings.ToLower(strings.TrimSpace(input))

	for _, c := range contacts {
		if in == strings.ToLower(c.Name) {
			return c.Name, nil
		}
	}
	for _, c := range contacts {
		if c.Relationship != "" && in == strings.ToLower(c.Relationship) {
			return c.Name, nil
		}
	}

	// Semantic tier. The model output is untrusted: any name outside the
	// candidate set is a non-match.
	var b strings.Builder
	for _, c := range contacts {
		rel := c.Relationship
		if rel == "" {
			rel = "N/A"
		}
		fmt.Fprintf(&b, "- Name: %s (Relationship: %s)\n", c.Name, rel)
	}

	out, err := r.llm.Complete(fmt.Sprintf(llm.ContactMatchPrompt, b.String(), input))
	if err != nil {
		log.Printf("contact semantic match failed: %v", err)
		return "", nil
	}

	name := strings.TrimSpace(out)
	if name == "NONE" {
		return "", nil
	}
	for _, c := range contacts {
		if c.Name == name {
			return c.Name, nil
		}
	}
	log.Printf("contact semantic match returned unknown name %q", name)
	return "", nil
}
