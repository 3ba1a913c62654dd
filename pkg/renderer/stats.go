package renderer

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	HitPixels      int     // Pixels where the ray crossed the isosurface
	MissPixels     int     // Pixels with a transparent miss
	TotalSamples   int     // Total number of field samples taken
	AverageSamples float64 // Average samples per pixel
	MaxSamplesUsed int     // Maximum samples taken by any pixel
}

// addPixel records the outcome of a single marched pixel
func (s *RenderStats) addPixel(hit bool, samples int) {
	s.TotalPixels++
	if hit {
		s.HitPixels++
	} else {
		s.MissPixels++
	}
	s.TotalSamples += samples
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, samples)
}

// merge folds another stats block into this one
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.MissPixels += other.MissPixels
	s.TotalSamples += other.TotalSamples
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, other.MaxSamplesUsed)
}

// finalize computes the derived averages
func (s *RenderStats) finalize() {
	if s.TotalPixels > 0 {
		s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
	}
}
