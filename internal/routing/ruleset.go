package routing

import (
	"fmt"
	"strings"

	"github.com/edvin/mailroute/internal/bit"
)

// RuleSet is a bit set of transport rule categories.
type RuleSet uint64

const (
	RuleInbound RuleSet = 1 << iota
	RuleOutbound
	RuleInternal
	RuleEncryptedHeaderCleaning
	RuleDecryptedHeaderCleaning
	RuleOutgoingHeaderCleaning

	RuleAll = RuleInbound | RuleOutbound | RuleInternal |
		RuleEncryptedHeaderCleaning | RuleDecryptedHeaderCleaning | RuleOutgoingHeaderCleaning
)

// ruleBits is the number of defined category bits.
const ruleBits = 6

var ruleNames = [ruleBits]string{
	"inbound",
	"outbound",
	"internal",
	"encrypted_header_cleaning",
	"decrypted_header_cleaning",
	"outgoing_header_cleaning",
}

// Includes reports whether s shares at least one category with other.
func (s RuleSet) Includes(other RuleSet) bool {
	return s&other != 0
}

// Categories returns the single-category flags set in s, lowest bit first.
func (s RuleSet) Categories() []RuleSet {
	var out []RuleSet
	for pos := 0; pos < ruleBits; pos++ {
		if bit.Check(uint64(s), pos) == 1 {
			out = append(out, RuleSet(bit.Set(0, pos)))
		}
	}
	return out
}

// Single reports whether exactly one category is set.
func (s RuleSet) Single() bool {
	return len(s.Categories()) == 1 && s&^RuleAll == 0
}

// String joins the category names with "|". Bits outside RuleAll are
// appended as a hex mask. The empty set renders as "".
func (s RuleSet) String() string {
	var names []string
	for pos := 0; pos < ruleBits; pos++ {
		if bit.Check(uint64(s), pos) == 1 {
			names = append(names, ruleNames[pos])
		}
	}
	if extra := s &^ RuleAll; extra != 0 {
		names = append(names, fmt.Sprintf("%#x", uint64(extra)))
	}
	return strings.Join(names, "|")
}

// ParseRuleSet parses a comma or pipe separated list of category names.
// "all" selects every category. Matching is case-insensitive and accepts
// both "outgoing_header_cleaning" and "OutgoingHeaderCleaning".
func ParseRuleSet(s string) (RuleSet, error) {
	var set RuleSet
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	for _, f := range fields {
		name := normalizeRuleName(f)
		if name == "" {
			continue
		}
		if name == "all" {
			set |= RuleAll
			continue
		}
		found := false
		for pos, known := range ruleNames {
			if strings.ReplaceAll(known, "_", "") == name {
				set = RuleSet(bit.Set(uint64(set), pos))
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown transport rule category %q", strings.TrimSpace(f))
		}
	}
	if set == 0 {
		return 0, fmt.Errorf("empty transport rule category list")
	}
	return set, nil
}

func normalizeRuleName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}
