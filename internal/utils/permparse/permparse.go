package permparse

import (
	"sort"
	"strconv"
	"strings"
)

// IDSet extracts a deduplicated, sorted set of user ids for a permission
// field from form-style input. Clients send either repeated values for the
// same field name or a single comma-joined string; both map to the same
// set. Empty and non-numeric tokens are dropped silently.
func IDSet(form map[string][]string, field string) []int64 {
	values, ok := form[field]
	if !ok {
		return nil
	}

	return Parse(values)
}

// Parse flattens one-or-many raw values into the id set.
func Parse(values []string) []int64 {
	seen := make(map[int64]struct{})

	for _, value := range values {
		for _, token := range strings.Split(value, ",") {
			token = strings.TrimSpace(token)
			if token == "" || !isDigits(token) {
				continue
			}

			id, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				continue
			}

			seen[id] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
