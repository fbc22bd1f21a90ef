// Package env reads Lambda-style configuration from environment variables.
package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func Get(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Require returns the value of k or an error naming the missing variable.
func Require(k string) (string, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return "", fmt.Errorf("missing env %s", k)
	}
	return v, nil
}

// Bool accepts 1/true/yes/on and 0/false/no/off in any case.
func Bool(k string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}

func Int(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// PickInt prefers an explicit event value over the environment.
func PickInt(ev *int, env int) int {
	if ev != nil {
		return *ev
	}
	return env
}
