package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Year is a model year. Browser forms post it from a <select>, so it decodes
// from a JSON number or a numeric string and always encodes as a number.
type Year int

func (y *Year) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
		if s == "" {
			*y = 0
			return nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid year %s", string(b))
	}
	*y = Year(n)
	return nil
}
