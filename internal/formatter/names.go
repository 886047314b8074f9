package formatter

import (
	"slices"
	"strings"
)

// mappingName returns the group a name belongs to: names deeper than the
// third level are folded into their third level ancestor.
func mappingName(name string) string {
	labels := strings.Split(name, ".")
	if len(labels) > 3 { //nolint:mnd
		return strings.Join(labels[len(labels)-4:], ".")
	}

	return name
}

// reversedName reverses the labels of name, so "www.example.com." becomes
// ".com.example.www" and subdomains sort below their parent.
func reversedName(name string) string {
	labels := strings.Split(name, ".")
	slices.Reverse(labels)

	return strings.Join(labels, ".")
}
