package backoff

import (
	"testing"
	"time"
)

func TestConstant(t *testing.T) {
	delay := 200 * time.Millisecond
	fn := Constant(delay)

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, delay},
		{2, delay},
		{3, delay},
		{10, delay},
	}

	for _, tt := range tests {
		got := fn(tt.attempt)
		if got != tt.want {
			t.Errorf("Constant(%v)(%d) = %v, want %v", delay, tt.attempt, got, tt.want)
		}
	}
}

func TestConstant_Default(t *testing.T) {
	fn := Constant(0)

	if got := fn(1); got != DefaultConstantDelay {
		t.Errorf("Constant(0)(1) = %v, want %v", got, DefaultConstantDelay)
	}
	if got := fn(7); got != DefaultConstantDelay {
		t.Errorf("Constant(0)(7) = %v, want %v", got, DefaultConstantDelay)
	}
}

func TestExponential_Defaults(t *testing.T) {
	fn := Exponential()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{7, 60 * time.Second},  // capped
		{50, 60 * time.Second}, // capped, must not overflow
	}

	for _, tt := range tests {
		got := fn(tt.attempt)
		if got != tt.want {
			t.Errorf("Exponential()(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponential_CustomOptions(t *testing.T) {
	fn := Exponential(
		WithBase(100*time.Millisecond),
		WithCap(1*time.Second),
		WithFactor(2))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1000 * time.Millisecond},  // limited by cap
		{10, 1000 * time.Millisecond}, // limited by cap
	}

	for _, tt := range tests {
		got := fn(tt.attempt)
		if got != tt.want {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponential_CustomFactor(t *testing.T) {
	fn := Exponential(
		WithBase(100*time.Millisecond),
		WithFactor(3))

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 300 * time.Millisecond},
		{3, 900 * time.Millisecond},
	}

	for _, tt := range tests {
		got := fn(tt.attempt)
		if got != tt.want {
			t.Errorf("factor 3: NextDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestExponential_AttemptClamp(t *testing.T) {
	fn := Exponential(WithBase(100 * time.Millisecond))

	// zero and negative attempts are handled as the first attempt
	delay0 := fn(0)
	delay1 := fn(1)
	delayNeg := fn(-1)

	if delay0 != delay1 || delay1 != delayNeg {
		t.Errorf("zero/negative attempt handling: %v, %v, %v", delay0, delay1, delayNeg)
	}
}

func TestFullJitter(t *testing.T) {
	opts := []Option{WithBase(100 * time.Millisecond), WithCap(5 * time.Second)}
	fn := FullJitter(opts...)
	exp := Exponential(opts...)

	for attempt := 1; attempt <= 6; attempt++ {
		upper := exp(attempt)
		for i := 0; i < 100; i++ {
			got := fn(attempt)
			if got < 0 || got > upper {
				t.Errorf("FullJitter(%d) = %v, out of range [0, %v]", attempt, got, upper)
			}
			if got%time.Millisecond != 0 {
				t.Errorf("FullJitter(%d) = %v, not whole milliseconds", attempt, got)
			}
		}
	}
}

func TestFullJitter_Variation(t *testing.T) {
	fn := FullJitter(WithBase(1 * time.Second))

	results := make(map[time.Duration]bool)
	for i := 0; i < 100; i++ {
		results[fn(5)] = true
	}

	if len(results) < 2 {
		t.Error("FullJitter should produce varying results")
	}
}

func TestEqualJitter(t *testing.T) {
	opts := []Option{WithBase(100 * time.Millisecond), WithCap(5 * time.Second)}
	fn := EqualJitter(opts...)
	exp := Exponential(opts...)

	for attempt := 1; attempt <= 6; attempt++ {
		upper := exp(attempt)
		half := time.Duration(upper.Milliseconds()/2) * time.Millisecond
		for i := 0; i < 100; i++ {
			got := fn(attempt)
			if got < half || got > upper {
				t.Errorf("EqualJitter(%d) = %v, out of range [%v, %v]", attempt, got, half, upper)
			}
		}
	}
}

func TestDecorrelatedJitter_FirstCall(t *testing.T) {
	base := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		j := NewDecorrelatedJitter(WithBase(base), WithTimes(3))

		got := j.Next()
		if got < base || got > 3*base {
			t.Errorf("first Next() = %v, out of range [%v, %v]", got, base, 3*base)
		}
	}
}

func TestDecorrelatedJitter_SecondCallRange(t *testing.T) {
	base := 100 * time.Millisecond
	capDelay := 10 * time.Second

	for i := 0; i < 100; i++ {
		j := NewDecorrelatedJitter(WithBase(base), WithCap(capDelay), WithTimes(3))

		first := j.Next()
		second := j.Next()

		upper := 3 * first
		if upper > capDelay {
			upper = capDelay
		}
		if second < base || second > upper {
			t.Errorf("second Next() = %v, out of range [%v, %v] (first was %v)", second, base, upper, first)
		}
	}
}

func TestDecorrelatedJitter_CapClamp(t *testing.T) {
	base := 100 * time.Millisecond
	capDelay := 150 * time.Millisecond
	j := NewDecorrelatedJitter(WithBase(base), WithCap(capDelay))

	for i := 0; i < 50; i++ {
		got := j.Next()
		if got < base || got > capDelay {
			t.Errorf("Next() = %v, out of range [%v, %v]", got, base, capDelay)
		}
	}
}

func TestDecorrelatedJitter_Variation(t *testing.T) {
	j := NewDecorrelatedJitter(WithBase(100*time.Millisecond), WithCap(1*time.Second))

	delays := make([]time.Duration, 10)
	for i := range delays {
		delays[i] = j.Next()
	}

	allSame := true
	for i := 1; i < len(delays); i++ {
		if delays[i] != delays[0] {
			allSame = false
			break
		}
	}

	if allSame {
		t.Error("all delays are the same, jitter is not working")
	}
}

func TestDecorrelatedJitter_Reset(t *testing.T) {
	base := 100 * time.Millisecond
	j := NewDecorrelatedJitter(WithBase(base), WithCap(10*time.Second))

	for i := 0; i < 5; i++ {
		j.Next()
	}

	j.Reset()

	// after reset the range is the first-call range again
	got := j.Next()
	if got < base || got > 3*base {
		t.Errorf("after Reset, Next() = %v, out of range [%v, %v]", got, base, 3*base)
	}
}

func TestDecorrelatedJitter_DelayIgnoresAttempt(t *testing.T) {
	j := NewDecorrelatedJitter(WithBase(100*time.Millisecond), WithCap(1*time.Second))

	// the attempt number is irrelevant; every call advances the sequence
	for _, attempt := range []int{3, 1, 1, -7} {
		got := j.Delay(attempt)
		if got < 100*time.Millisecond || got > 1*time.Second {
			t.Errorf("Delay(%d) = %v, out of range", attempt, got)
		}
	}
}

// Benchmark tests
func BenchmarkExponential(b *testing.B) {
	fn := Exponential(WithBase(100 * time.Millisecond))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fn(i%10 + 1)
	}
}

func BenchmarkFullJitter(b *testing.B) {
	fn := FullJitter(WithBase(100 * time.Millisecond))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fn(i%10 + 1)
	}
}

func BenchmarkDecorrelatedJitter(b *testing.B) {
	j := NewDecorrelatedJitter(WithBase(100*time.Millisecond), WithCap(1*time.Second))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		j.Next()
	}
}
