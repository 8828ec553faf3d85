// Package tipgen produces tip content for a (goal, niche, experience) profile.
package tipgen

import (
	"context"
	"fmt"

	"github.com/limbo/sovet/pkg/entity"
)

type Generator interface {
	Generate(ctx context.Context, goal, niche string, experience entity.Experience) (entity.TipContent, error)
}

type Niche struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Niches = []Niche{
	{ID: "crypto-dev", Label: "Crypto Development"},
	{ID: "creator-economy", Label: "Creator Economy"},
	{ID: "public-speaking", Label: "Public Speaking"},
	{ID: "web-development", Label: "Web Development"},
	{ID: "entrepreneurship", Label: "Entrepreneurship"},
	{ID: "productivity", Label: "Productivity"},
	{ID: "leadership", Label: "Leadership"},
	{ID: "marketing", Label: "Marketing"},
	{ID: "design", Label: "Design"},
	{ID: "fitness", Label: "Fitness & Health"},
}

type catalogKey struct {
	niche      string
	experience entity.Experience
}

var catalog = map[catalogKey]entity.TipContent{
	{"crypto-dev", entity.Beginner}: {
		Content: "Start with understanding blockchain fundamentals before diving into smart contracts. Today, focus on learning how Base network processes transactions.",
		ActionItems: []string{
			"Read Base documentation's 'Getting Started' section",
			"Create a Base testnet wallet and get test ETH from faucet",
		},
	},
	{"crypto-dev", entity.Intermediate}: {
		Content: "Practice writing secure smart contracts by implementing common patterns. Focus on reentrancy protection and proper access controls today.",
		ActionItems: []string{
			"Review OpenZeppelin's ReentrancyGuard implementation",
			"Write a simple contract with proper access control using Ownable",
		},
	},
	{"crypto-dev", entity.Advanced}: {
		Content: "Optimize your smart contracts for gas efficiency. Use assembly for critical operations and implement custom errors instead of require strings.",
		ActionItems: []string{
			"Refactor one function in your current contract to use assembly",
			"Replace all require statements with custom errors in a contract",
		},
	},
	{"public-speaking", entity.Beginner}: {
		Content: "Build confidence by practicing your speech in front of a mirror. Focus on maintaining eye contact with your reflection and speaking clearly.",
		ActionItems: []string{
			"Practice a 2-minute introduction about yourself in front of a mirror",
			"Record yourself speaking and note areas for improvement",
		},
	},
	{"public-speaking", entity.Intermediate}: {
		Content: "Master the art of storytelling by incorporating personal anecdotes into your presentations. Stories create emotional connections with your audience.",
		ActionItems: []string{
			"Identify 3 personal stories that relate to your expertise",
			"Practice weaving one story into your next presentation",
		},
	},
	{"public-speaking", entity.Advanced}: {
		Content: "Develop your unique speaking style by studying great speakers and adapting their techniques to match your personality and message.",
		ActionItems: []string{
			"Watch a TED talk and analyze the speaker's unique techniques",
			"Experiment with one new technique in your next presentation",
		},
	},
}

// Catalog is the built-in generator. It never fails: profiles without an
// entry get a generic tip echoing the goal.
type Catalog struct{}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (Catalog) Generate(_ context.Context, goal, niche string, experience entity.Experience) (entity.TipContent, error) {
	return Lookup(goal, niche, experience), nil
}

func Lookup(goal, niche string, experience entity.Experience) entity.TipContent {
	if tip, ok := catalog[catalogKey{niche, experience}]; ok {
		return entity.TipContent{
			Content:     tip.Content,
			ActionItems: append([]string(nil), tip.ActionItems...),
		}
	}
	return entity.TipContent{
		Content: fmt.Sprintf("Focus on taking one small step towards your goal: %q. Consistency beats perfection every time.", goal),
		ActionItems: []string{
			"Identify the smallest possible action you can take today",
			"Set a 15-minute timer and work on that action",
		},
	}
}

func IsKnownNiche(id string) bool {
	for _, n := range Niches {
		if n.ID == id {
			return true
		}
	}
	return false
}
