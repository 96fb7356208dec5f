package envvar

import (
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Prefix namespaces every variable read by this package.
const Prefix = "GLASSNODE_"

// Name returns the environment variable name of n, e.g. "API_KEY" -> "GLASSNODE_API_KEY".
func Name(n string) string {
	return Prefix + n
}

func lookup(n string) (string, bool) {
	str, ok := os.LookupEnv(Name(n))
	if !ok || str == "" {
		return "", false
	}

	return str, true
}

func String(n string, args ...string) (string, bool) {
	defaultValue := ""
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	return str, true
}

func Duration(n string, args ...time.Duration) (time.Duration, bool) {
	defaultValue := time.Duration(0)
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	du, err := time.ParseDuration(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as time.Duration, incorrect format", Name(n), str)
		return defaultValue, false
	}

	return du, true
}

func Int(n string, args ...int) (int, bool) {
	defaultValue := 0
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	num, err := strconv.Atoi(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as int, incorrect format", Name(n), str)
		return defaultValue, false
	}

	return num, true
}

func Bool(n string, args ...bool) (bool, bool) {
	defaultValue := false
	if len(args) > 0 {
		defaultValue = args[0]
	}

	str, ok := lookup(n)
	if !ok {
		return defaultValue, false
	}

	b, err := strconv.ParseBool(str)
	if err != nil {
		logrus.WithError(err).Errorf("can not parse env var %s=%q as bool, incorrect format", Name(n), str)
		return defaultValue, false
	}

	return b, true
}
