package hw

// FakeBuzzer records buzzer writes for test assertions.
type FakeBuzzer struct {
	On   bool
	Sets []bool
}

func (f *FakeBuzzer) Set(on bool) {
	f.On = on
	f.Sets = append(f.Sets, on)
}

// FakeLED records LED writes for test assertions.
type FakeLED struct {
	On   bool
	Sets []bool
}

func (f *FakeLED) Set(on bool) {
	f.On = on
	f.Sets = append(f.Sets, on)
}

// FakeServo records commanded angles.
type FakeServo struct {
	Angle  float64
	Angles []float64
}

func (f *FakeServo) SetAngle(degrees float64) {
	f.Angle = degrees
	f.Angles = append(f.Angles, degrees)
}

// FakeLightSensor returns scripted raw readings. Each call consumes the
// next sample; when exhausted, the last sample repeats.
type FakeLightSensor struct {
	Samples []int
	index   int
}

// NewFakeLightSensor creates a FakeLightSensor with the given samples.
func NewFakeLightSensor(samples ...int) *FakeLightSensor {
	return &FakeLightSensor{Samples: samples}
}

func (f *FakeLightSensor) ReadRaw() int {
	if len(f.Samples) == 0 {
		return 0
	}
	raw := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return raw
}

// FakeEnvSensor returns a settable temperature and humidity.
type FakeEnvSensor struct {
	Temperature float64
	Humidity    float64
}

func (f *FakeEnvSensor) Read() (float64, float64) {
	return f.Temperature, f.Humidity
}

// FakeButtons satisfies Buttons without hardware. Tests inject edges
// directly into the debouncer instead.
type FakeButtons struct {
	Closed bool
}

func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}
