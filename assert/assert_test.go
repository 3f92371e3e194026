package assert

import "testing"

func TestIsTrue(t *testing.T) {
	IsTrue(true, "never panics")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		if err, ok := r.(error); !ok || err.Error() != "kind 12 is not registered" {
			t.Fatalf("unexpected panic value %v", r)
		}
	}()
	IsTrue(false, "kind %d is not registered", 12)
}
