package components

import "testing"

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{DirDown, "down"},
		{DirRight, "right"},
		{DirUp, "up"},
		{DirLeft, "left"},
		{Direction(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.dir.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", int(tt.dir), got, tt.want)
		}
	}
}

// 朝向的取值就是精灵图的行号
func TestDirectionSpriteRows(t *testing.T) {
	if DirDown != 0 || DirRight != 1 || DirUp != 2 || DirLeft != 3 {
		t.Errorf("sprite rows = %d %d %d %d, want 0 1 2 3", DirDown, DirRight, DirUp, DirLeft)
	}
}

func TestParticleKindString(t *testing.T) {
	if ParticleDrop.String() != "drop" || ParticleRipple.String() != "ripple" {
		t.Errorf("got %q / %q", ParticleDrop.String(), ParticleRipple.String())
	}
	if ParticleKind(5).String() != "unknown" {
		t.Errorf("unknown kind = %q", ParticleKind(5).String())
	}
}
