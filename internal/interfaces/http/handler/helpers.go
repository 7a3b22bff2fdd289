package handler

import (
	"fmt"
	"strconv"
)

func errInvalidParam(name string) error {
	return fmt.Errorf("invalid or missing query parameter: %s", name)
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("not a positive integer: %s", s)
	}
	return n, nil
}
