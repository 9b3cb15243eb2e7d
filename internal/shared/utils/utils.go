package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseID parses a positive int64 path parameter
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
