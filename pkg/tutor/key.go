package tutor

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/artem13815/tutor/pkg/cache"
	"github.com/artem13815/tutor/pkg/content"
)

// CacheKey derives the cache key of a request.
// Layout: ai_answer:<intent>:<owner id|->:<deck id|->:<slide|->:<sha256(question)>. Every field
// before the hash is free of ':' so distinct inputs never share a key.
// Deck-scoped entries carry the owner, so a hit never bypasses the deck access check.
func CacheKey(intent content.Intent, question string, ref *content.Reference) string {
	owner, deck, slide := "-", "-", "-"
	if ref != nil {
		owner = ref.OwnerID.String()
		deck = ref.DeckID.String()
		if ref.HasSlide() {
			slide = strconv.Itoa(ref.Slide)
		}
	}
	sum := sha256.Sum256([]byte(strings.TrimSpace(question)))

	var b strings.Builder
	b.WriteString(cache.KeyPrefix)
	b.WriteString(string(intent))
	b.WriteByte(':')
	b.WriteString(owner)
	b.WriteByte(':')
	b.WriteString(deck)
	b.WriteByte(':')
	b.WriteString(slide)
	b.WriteByte(':')
	b.WriteString(hex.EncodeToString(sum[:]))
	return b.String()
}
