// Package tailoring implements the document generation collaborator: it
// pre-selects relevant experience bullets, prompts the LLM for a tailored
// resume and cover letter, validates the structured output and materializes
// artifact sources.
package tailoring

import (
	"regexp"
	"sort"
	"strings"

	"github.com/umukozihr/resume-tailor/internal/types"
)

// DefaultBulletBudget is how many profile bullets are pre-selected for the prompt.
const DefaultBulletBudget = 12

var stopwords = func() map[string]struct{} {
	words := strings.Fields("a an the and or for to of in on at with from by as is are was were be been being will would should could into about over under within across")
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9+#.]+`)

// normTokens lowercases text and splits it into content-bearing tokens,
// dropping stopwords and single characters.
func normTokens(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, stop := stopwords[t]; stop || len(t) <= 1 {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// SelectedBullet is one pre-selected profile bullet with its source role.
type SelectedBullet struct {
	RoleTitle string `json:"role_title"`
	Company   string `json:"company"`
	Bullet    string `json:"bullet"`
}

// scoreBullet sums the JD frequency of each token in the bullet.
func scoreBullet(bullet string, jdCounts map[string]int) int {
	score := 0
	for _, t := range normTokens(bullet) {
		score += jdCounts[t]
	}
	return score
}

// SelectTopBullets ranks every experience bullet in the profile by token
// overlap with the job description and returns the top k. Ties keep the
// profile's original ordering so selection is deterministic.
func SelectTopBullets(p types.Profile, jdText string, k int) []SelectedBullet {
	if k <= 0 {
		k = DefaultBulletBudget
	}

	jdCounts := make(map[string]int)
	for _, t := range normTokens(jdText) {
		jdCounts[t]++
	}

	type scored struct {
		SelectedBullet
		score int
		order int
	}

	var pool []scored
	for _, role := range p.Experience {
		for _, bullet := range role.Bullets {
			pool = append(pool, scored{
				SelectedBullet: SelectedBullet{RoleTitle: role.Title, Company: role.Company, Bullet: bullet},
				score:          scoreBullet(bullet, jdCounts),
				order:          len(pool),
			})
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].score != pool[j].score {
			return pool[i].score > pool[j].score
		}
		return pool[i].order < pool[j].order
	})

	if len(pool) > k {
		pool = pool[:k]
	}
	selected := make([]SelectedBullet, len(pool))
	for i, s := range pool {
		selected[i] = s.SelectedBullet
	}
	return selected
}
