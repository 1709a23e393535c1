package deck

import (
	"errors"
	"fmt"

	"github.com/peterkuimelis/rawdeal/internal/catalog"
)

// Size is the exact number of cards in a legal deck, superstar excluded.
const Size = 60

const maxCopies = 3

// ErrInvalidDeck wraps every deck legality violation.
var ErrInvalidDeck = errors.New("invalid deck")

// Validate reports whether titles form a legal deck for the named superstar.
func Validate(titles []string, cat *catalog.Catalog, superstar string) bool {
	return Check(titles, cat, superstar) == nil
}

// Check returns the first legality violation, or nil.
func Check(titles []string, cat *catalog.Catalog, superstar string) error {
	if len(titles) != Size {
		return fmt.Errorf("%w: has %d cards, want %d", ErrInvalidDeck, len(titles), Size)
	}
	star, ok := cat.Superstar(superstar)
	if !ok {
		return fmt.Errorf("%w: unknown superstar %q", ErrInvalidDeck, superstar)
	}

	counts := make(map[string]int)
	var heel, face string
	for _, title := range titles {
		card, ok := cat.Card(title)
		if !ok {
			return fmt.Errorf("%w: %w: %q", ErrInvalidDeck, catalog.ErrUnknownCard, title)
		}
		counts[title]++
		n := counts[title]
		setUp := card.HasSubtype(catalog.SubtypeSetUp)

		if !setUp && card.HasSubtype(catalog.SubtypeUnique) && n > 1 {
			return fmt.Errorf("%w: unique card %q appears more than once", ErrInvalidDeck, title)
		}
		if !setUp && n > maxCopies {
			return fmt.Errorf("%w: %q appears more than %d times", ErrInvalidDeck, title, maxCopies)
		}
		if card.HasSubtype(catalog.SubtypeHeel) {
			heel = title
		}
		if card.HasSubtype(catalog.SubtypeFace) {
			face = title
		}
		if heel != "" && face != "" {
			return fmt.Errorf("%w: mixes Heel %q and Face %q", ErrInvalidDeck, heel, face)
		}
		for _, sub := range card.Subtypes {
			if cat.IsLogo(sub) && sub != star.Logo {
				return fmt.Errorf("%w: %q is a %s card, superstar logo is %s", ErrInvalidDeck, title, sub, star.Logo)
			}
		}
	}
	return nil
}

// Resolve validates l against cat and returns its cards in arsenal order with
// the superstar definition.
func (l List) Resolve(cat *catalog.Catalog) ([]*catalog.Card, *catalog.Superstar, error) {
	if err := Check(l.Titles, cat, l.Superstar); err != nil {
		return nil, nil, fmt.Errorf("deck %q: %w", l.Name, err)
	}
	cards, err := cat.Resolve(l.Titles)
	if err != nil {
		return nil, nil, err
	}
	star, _ := cat.Superstar(l.Superstar)
	return cards, star, nil
}
