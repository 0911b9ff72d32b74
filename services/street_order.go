package services

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StreetOrder is the patrol route order: the fixed, dispatcher-defined
// sequence in which streets are physically patrolled. It is the canonical
// sort key for case and property lists; list position matters when one
// entry could shadow another.
var StreetOrder = []string{
	// West to East
	"main", "vine", "quincy", "river", "cherry", "maple", "walnut", "cedar", "elm",
	"mickey mantle",
	"l st",
	"mcbee",
	"meadowlark",
	"m st",
	// North to South
	"6th", "5th", "4th", "3rd", "2nd", "1st", "commerce", "a st", "b st", "c st",
	"doug furnas",
}

var (
	houseNumberRegex  = regexp.MustCompile(`^(?:(\d+)\s+)?(.*)$`)
	streetSuffixRegex = regexp.MustCompile(`\s+(st|street|blvd|boulevard|ave|avenue|ln|lane|rt|route|rd|road)$`)
)

// streetCollator provides the locale-aware, numeric-aware alphabetical
// fallback for streets outside the patrol route. Collators carry internal
// buffers, so access is serialized.
var (
	streetCollator   = collate.New(language.AmericanEnglish, collate.Numeric)
	streetCollatorMu sync.Mutex
)

type parsedStreet struct {
	Number int
	Name   string
}

// parseStreetAddress splits a full street address into its house number
// (0 when absent) and a normalized name: lowercased, known street-type
// suffix stripped, alias rules applied.
func parseStreetAddress(address string) parsedStreet {
	lower := strings.ToLower(strings.TrimSpace(address))

	match := houseNumberRegex.FindStringSubmatch(lower)
	if match == nil {
		return parsedStreet{Number: 0, Name: lower}
	}

	number := 0
	if match[1] != "" {
		number, _ = strconv.Atoi(match[1])
	}

	name := strings.TrimSpace(streetSuffixRegex.ReplaceAllString(match[2], ""))

	// Renamed streets keep turning up under their old signage.
	if strings.Contains(name, "route 66") || strings.Contains(name, "rt 66") {
		name = "mickey mantle"
	}
	if strings.Contains(name, "d st") {
		name = "doug furnas"
	}

	return parsedStreet{Number: number, Name: name}
}

// routeIndex returns the patrol-route position of a parsed street name, or
// -1 when the street is not on the route. An entry matches when its tokens
// appear as a consecutive run within the name's tokens; first match wins.
// Token matching (rather than raw substring containment) keeps the index a
// pure function of the name, so the comparator is a true total order.
func routeIndex(name string) int {
	fields := strings.Fields(name)
	for i, entry := range StreetOrder {
		if containsTokenRun(fields, strings.Fields(entry)) {
			return i
		}
	}
	return -1
}

// containsTokenRun reports whether want appears as a consecutive run in have.
func containsTokenRun(have, want []string) bool {
	if len(want) == 0 || len(want) > len(have) {
		return false
	}
	for i := 0; i+len(want) <= len(have); i++ {
		matched := true
		for j := range want {
			if have[i+j] != want[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// CompareStreets imposes the patrol-route total order over street-address
// strings, for use as a sort comparator. Streets on the route sort by route
// position then house number; a street on the route sorts before one that is
// not; streets off the route sort alphabetically (numeric-aware) then by
// house number.
func CompareStreets(addressA, addressB string) int {
	parsedA := parseStreetAddress(addressA)
	parsedB := parseStreetAddress(addressB)

	indexA := routeIndex(parsedA.Name)
	indexB := routeIndex(parsedB.Name)

	if indexA != -1 && indexB != -1 {
		if indexA != indexB {
			return indexA - indexB
		}
		return parsedA.Number - parsedB.Number
	}
	if indexA != -1 {
		return -1
	}
	if indexB != -1 {
		return 1
	}

	streetCollatorMu.Lock()
	nameCompare := streetCollator.CompareString(parsedA.Name, parsedB.Name)
	streetCollatorMu.Unlock()
	if nameCompare != 0 {
		return nameCompare
	}
	return parsedA.Number - parsedB.Number
}
