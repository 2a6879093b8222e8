package utils

import "testing"

func TestByteToRune(t *testing.T) {
	ri := NewRuneIndex("aé日b") // bytes: a=0 é=1,2 日=3,4,5 b=6
	testCases := []struct{ in, want int }{
		{-1, 0}, {0, 0}, {1, 1}, {2, 1}, {3, 2}, {5, 2}, {6, 3}, {7, 4}, {100, 4},
	}
	for _, tc := range testCases {
		if got := ri.ByteToRune(tc.in); got != tc.want {
			t.Errorf("ByteToRune(%d) = %d; expected %d", tc.in, got, tc.want)
		}
	}
	if CaptureNameToStyleName("@keyword.control") != "keyword.control" {
		t.Errorf("capture prefix not stripped")
	}
}
