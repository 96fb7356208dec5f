package testutil

import (
	"os"
	"regexp"
	"testing"
)

func maskSecret(s string) string {
	re := regexp.MustCompile(`\b(\w{4})\w+\b`)
	s = re.ReplaceAllString(s, "$1******")
	return s
}

// IntegrationTestConfigured reports whether the live api tests of prefix are enabled:
// <prefix>_API_KEY is set and TEST_<prefix>=1.
func IntegrationTestConfigured(t *testing.T, prefix string) (key string, ok bool) {
	key, hasKey := os.LookupEnv(prefix + "_API_KEY")
	ok = hasKey && key != "" && os.Getenv("TEST_"+prefix) == "1"
	if ok {
		t.Logf(prefix+" api integration test enabled, key = %s", maskSecret(key))
	}

	return key, ok
}
