package version

import "testing"

func TestUserAgent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "1.2.3"
	if got := UserAgent(); got != "searchproxy/1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
