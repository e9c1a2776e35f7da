package stats

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	// ErrShortTrack indicates too few samples for spectral analysis.
	ErrShortTrack = errors.New("stats: track too short for spectral analysis")

	// ErrFlatTrack indicates a track with no oscillation to measure.
	ErrFlatTrack = errors.New("stats: track has no dominant frequency")
)

const minSpectrumSamples = 8

// Cadence estimates the dominant oscillation frequency of a scalar
// track, typically one coordinate of a foot or hand during gait. The
// rate is samples per time unit of the recording and the result is in
// cycles per the same unit. The resolution is rate/len(track).
func Cadence(track []float64, rate float64) (float64, error) {
	n := len(track)
	if n < minSpectrumSamples || rate <= 0 {
		return 0, ErrShortTrack
	}

	clean := fillGaps(track)
	mean := 0.0
	for _, v := range clean {
		mean += v
	}
	mean /= float64(n)

	// Remove the mean and apply a Hann window so the resting position
	// does not leak across the low bins.
	buf := make([]complex128, n)
	for i, v := range clean {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex((v-mean)*window, 0)
	}
	spectrum := fft.FFT(buf)

	peak := 0
	peakMag := 0.0
	for i := 1; i < n/2; i++ {
		if mag := cmplx.Abs(spectrum[i]); mag > peakMag {
			peak, peakMag = i, mag
		}
	}
	if peak == 0 || peakMag == 0 {
		return 0, ErrFlatTrack
	}
	return float64(peak) * rate / float64(n), nil
}

// fillGaps replaces missing samples with the last finite value so the
// transform sees a continuous signal. Leading gaps take the first
// finite value.
func fillGaps(track []float64) []float64 {
	clean := make([]float64, len(track))
	last := math.NaN()
	for _, v := range track {
		if isFinite(v) {
			last = v
			break
		}
	}
	for i, v := range track {
		if isFinite(v) {
			last = v
		}
		clean[i] = last
	}
	return clean
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
