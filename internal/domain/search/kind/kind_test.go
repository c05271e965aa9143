package kind

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Kind{Text, Images}
	for _, k := range valid {
		if !k.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", k)
		}
	}

	invalid := []Kind{"", "videos", "general", "TEXT"}
	for _, k := range invalid {
		if k.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", k)
		}
	}
}
