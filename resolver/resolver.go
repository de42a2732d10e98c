// Package resolver picks the player a free-text username query refers to.
package resolver

import (
	"errors"

	"github.com/tnicklin/omegastrikers/models"
)

var (
	// ErrNoMatches is returned when the search produced no candidates.
	ErrNoMatches = errors.New("resolver: no players match the username")
	// ErrAmbiguous is returned by PolicyStrict when several candidates match
	// and none of them has exactly the requested username.
	ErrAmbiguous = errors.New("resolver: several players match the username and none exactly")
)

// Policy decides what happens when no candidate has the exact username.
type Policy int

const (
	// PolicyFirstMatch falls back to the first candidate in service order.
	// It can return the wrong player when the intended one is not listed first.
	PolicyFirstMatch Policy = iota
	// PolicyStrict only falls back when there is a single candidate.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyFirstMatch:
		return "first_match"
	case PolicyStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// Resolve returns the player identifier for username among the search
// candidates. An exact, case-sensitive username match always wins.
func Resolve(username string, result models.SearchResult, policy Policy) (string, error) {
	if len(result.Matches) == 0 {
		return "", ErrNoMatches
	}

	for _, match := range result.Matches {
		if match.Username == username {
			return match.PlayerID, nil
		}
	}

	if policy == PolicyStrict && len(result.Matches) > 1 {
		return "", ErrAmbiguous
	}
	return result.Matches[0].PlayerID, nil
}
