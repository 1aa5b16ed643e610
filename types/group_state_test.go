package types

import "testing"

func TestGroupStateString(t *testing.T) {
	tests := []struct {
		state GroupState
		want  string
	}{
		{GroupOpen, "Open"},
		{GroupClosed, "Closed"},
		{GroupState(999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("GroupState.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
