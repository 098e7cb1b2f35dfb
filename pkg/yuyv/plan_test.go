package yuyv

import "testing"

func TestPlanPartitionsBuffer(t *testing.T) {
	tests := []struct{ w, h int }{
		{2, 1}, {2, 2}, {4, 2}, {6, 3}, {16, 9}, {64, 48}, {1280, 720},
	}
	for _, tc := range tests {
		p := NewPlan(tc.w, tc.h)
		lb := tc.w * tc.h * 2
		seen := make([]int, lb)
		for _, dst := range [][]int{p.dstY, p.dstU, p.dstV} {
			for _, i := range dst {
				if i < 0 || i >= lb {
					t.Fatalf("%dx%d: index %d outside [0, %d)", tc.w, tc.h, i, lb)
				}
				seen[i]++
			}
		}
		for i, n := range seen {
			if n != 1 {
				t.Errorf("%dx%d: output byte %d covered %d times", tc.w, tc.h, i, n)
			}
		}
	}
}

func TestPlanChannelLengths(t *testing.T) {
	tests := []struct{ w, h int }{
		{2, 1}, {4, 2}, {6, 3}, {320, 240}, {1280, 720},
	}
	for _, tc := range tests {
		p := NewPlan(tc.w, tc.h)
		n := tc.w * tc.h
		if len(p.srcY) != len(p.dstY) || len(p.srcY) != n {
			t.Errorf("%dx%d: luma lengths src=%d dst=%d want %d",
				tc.w, tc.h, len(p.srcY), len(p.dstY), n)
		}
		if len(p.srcU) != len(p.dstU) || len(p.srcU) != n/2 {
			t.Errorf("%dx%d: U lengths src=%d dst=%d want %d",
				tc.w, tc.h, len(p.srcU), len(p.dstU), n/2)
		}
		if len(p.srcV) != len(p.dstV) || len(p.srcV) != n/2 {
			t.Errorf("%dx%d: V lengths src=%d dst=%d want %d",
				tc.w, tc.h, len(p.srcV), len(p.dstV), n/2)
		}
	}
}

func TestPlanIndexSequences(t *testing.T) {
	p := NewPlan(2, 1)
	expect := []struct {
		name string
		got  []int
		want []int
	}{
		{"srcY", p.srcY, []int{0, 3}},
		{"srcU", p.srcU, []int{1}},
		{"srcV", p.srcV, []int{2}},
		{"dstY", p.dstY, []int{0, 2}},
		{"dstU", p.dstU, []int{1}},
		{"dstV", p.dstV, []int{3}},
	}
	for _, e := range expect {
		if len(e.got) != len(e.want) {
			t.Fatalf("%s: got %v, want %v", e.name, e.got, e.want)
		}
		for i := range e.want {
			if e.got[i] != e.want[i] {
				t.Errorf("%s: got %v, want %v", e.name, e.got, e.want)
				break
			}
		}
	}
}

func TestPlanDims(t *testing.T) {
	p := NewPlan(640, 480)
	if w, h := p.Dims(); w != 640 || h != 480 {
		t.Errorf("dims %dx%d, want 640x480", w, h)
	}
	if p.BufferSize() != 640*480*2 {
		t.Errorf("buffer size %d, want %d", p.BufferSize(), 640*480*2)
	}
}
